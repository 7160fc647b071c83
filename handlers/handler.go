package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/logging"
	"taskboard/backend/middleware"
	"taskboard/backend/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP status
// codes. Unexpected errors are logged and reported generically.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logging.Logger.Errorf("Event ID: UNEXPECTED_ERROR, Description: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

// principal returns the authenticated user id placed in the context by
// the JWT middleware.
func principal(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
	}
	return userID, ok
}

// pathID parses an ObjectID path variable, writing a 400 when the hex
// is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}
