package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     *req.DueDate,
	}

	var err error
	if input.Priority, err = domain.ParseTaskPriority(req.Priority); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if req.Status != "" {
		if input.Status, err = domain.ParseTaskStatus(req.Status); err != nil {
			HandleAPIError(w, r, err)
			return
		}
	}
	if req.AssigneeID != nil {
		id := uuid.MustParse(*req.AssigneeID) // validated as a uuid above
		input.AssigneeID = &id
	}

	task, err := h.tasks.CreateTask(r.Context(), actor, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task created",
		slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), actor, taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id}. Only admins may rewrite a task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}

	var err error
	if req.Status != "" {
		if input.Status, err = domain.ParseTaskStatus(req.Status); err != nil {
			HandleAPIError(w, r, err)
			return
		}
	}
	if req.Priority != "" {
		if input.Priority, err = domain.ParseTaskPriority(req.Priority); err != nil {
			HandleAPIError(w, r, err)
			return
		}
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	task, err := h.tasks.UpdateTask(r.Context(), actor, taskID, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status. The status comes
// from the "status" query parameter or, failing that, the JSON body.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		var req UpdateTaskStatusRequest
		if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		status = req.Status
	}

	task, err := h.tasks.UpdateTaskStatus(r.Context(), actor, taskID, status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// AssignTask handles PATCH /api/tasks/{id}/assign.
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.AssignTask(r.Context(), actor, taskID, uuid.MustParse(req.AssigneeID))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), actor, taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTasks handles GET /api/tasks?page=&size=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	page, size, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), actor, page, size)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}
