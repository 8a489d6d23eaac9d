package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskRequest is the body of create and update requests.
// Name must be present; an empty string is accepted. Unknown fields are ignored.
type TaskRequest struct {
	Name     *string `json:"name" validate:"required"`
	Priority *int32  `json:"priority"`
}

func (req TaskRequest) toInput() domain.TaskInput {
	return domain.TaskInput{
		Name:     *req.Name,
		Priority: req.Priority,
	}
}

// CreateTaskResponse is the data of a successful create.
type CreateTaskResponse struct {
	ID int64 `json:"id"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nonNil(tasks))
}

// GetTask handles GET /api/tasks/{id} requests.
// The data is an array holding zero or one task; a missing task is not an error.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nonNil(tasks))
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	input, err := decodeTaskRequest(w, r)
	if err != nil {
		log.Debug("invalid create request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	id, err := h.taskStore.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, CreateTaskResponse{ID: id})
}

// UpdateTask handles PATCH /api/tasks/{id} requests.
// Name and priority are both replaced; an omitted priority is stored as null.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	input, err := decodeTaskRequest(w, r)
	if err != nil {
		log.Debug("invalid update request", slog.Int64("task_id", id), slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskStore.Update(r.Context(), id, input); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil)
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid task id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil)
}

// nonNil keeps an empty result serialising as [] rather than null.
func nonNil(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}
