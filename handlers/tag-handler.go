package handlers

import (
	"encoding/json"
	"net/http"

	"taskboard/backend/services"
)

type TagHandler struct {
	Service *services.TagService
}

func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{Service: service}
}

func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	tag, err := h.Service.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Tag created successfully",
		"tag":     tag,
	})
}

func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	tags, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
