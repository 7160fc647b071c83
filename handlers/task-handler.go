package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/models"
	"taskboard/backend/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}

	var req struct {
		Name           string          `json:"name"`
		Description    string          `json:"description"`
		ProjectID      string          `json:"projectId"`
		TeamID         string          `json:"teamId"`
		Owners         []string        `json:"owners"`
		Tags           []string        `json:"tags"`
		TimeToComplete int             `json:"timeToComplete"`
		DueDate        time.Time       `json:"dueDate"`
		Status         models.Status   `json:"status"`
		Priority       models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.ProjectID == "" || req.TeamID == "" || len(req.Owners) == 0 ||
		req.TimeToComplete == 0 || req.DueDate.IsZero() {
		http.Error(w, "Required fields missing", http.StatusBadRequest)
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}
	owners := make([]primitive.ObjectID, 0, len(req.Owners))
	for _, o := range req.Owners {
		ownerID, err := primitive.ObjectIDFromHex(o)
		if err != nil {
			http.Error(w, "Invalid owner ID", http.StatusBadRequest)
			return
		}
		owners = append(owners, ownerID)
	}

	task, err := h.Service.Create(r.Context(), userID, services.TaskCreate{
		Name:           req.Name,
		Description:    req.Description,
		ProjectID:      projectID,
		TeamID:         teamID,
		Owners:         owners,
		Tags:           req.Tags,
		TimeToComplete: req.TimeToComplete,
		DueDate:        req.DueDate,
		Status:         req.Status,
		Priority:       req.Priority,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

// ListMyTasks returns tasks the user created or owns.
func (h *TaskHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}

	tasks, err := h.Service.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	task, err := h.Service.Get(r.Context(), userID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

func (h *TaskHandler) ListTasksByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	tasks, err := h.Service.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// UpdateTask patches tags, status and priority.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	var req struct {
		Tags     *[]string       `json:"tags"`
		Status   models.Status   `json:"status"`
		Priority models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.Service.Update(r.Context(), userID, taskID, services.TaskUpdate{
		Tags:     req.Tags,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := principal(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID, taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
