package taskhandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain"
	"todo-server/internal/domain/task"
	"todo-server/internal/interfaces/httpserver/middlewares"
	"todo-server/internal/interfaces/httpserver/requests/taskrequests"
	"todo-server/internal/interfaces/httpserver/responses"
	"todo-server/internal/utils/apperrors"
)

// TaskHandler serves CRUD over the caller's tasks.
type TaskHandler struct {
	tasks  *task.Service
	logger zerolog.Logger
}

func NewTaskHandler(tasks *task.Service, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With().Str("handler", "task").Logger(),
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req taskrequests.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), principal.UserID, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses.NewTaskResponse(t))
}

func (h *TaskHandler) List(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var query taskrequests.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), principal.UserID, query.Status)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewTaskListResponse(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	principal, taskID, ok := h.taskRequestScope(c)
	if !ok {
		return
	}
	t, err := h.tasks.Get(c.Request.Context(), principal.UserID, taskID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewTaskResponse(t))
}

func (h *TaskHandler) Update(c *gin.Context) {
	principal, taskID, ok := h.taskRequestScope(c)
	if !ok {
		return
	}

	var req taskrequests.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	t, err := h.tasks.Update(c.Request.Context(), principal.UserID, taskID, task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewTaskResponse(t))
}

// SetCompletion handles PATCH .../complete.
func (h *TaskHandler) SetCompletion(c *gin.Context) {
	principal, taskID, ok := h.taskRequestScope(c)
	if !ok {
		return
	}

	var req taskrequests.CompletionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	t, err := h.tasks.SetCompletion(c.Request.Context(), principal.UserID, taskID, *req.Completed)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewTaskResponse(t))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	principal, taskID, ok := h.taskRequestScope(c)
	if !ok {
		return
	}
	if _, err := h.tasks.Delete(c.Request.Context(), principal.UserID, taskID); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// taskRequestScope resolves the principal and numeric task id, writing the
// error response itself when either is missing.
func (h *TaskHandler) taskRequestScope(c *gin.Context) (domain.Principal, uint, bool) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return domain.Principal{}, 0, false
	}
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		responses.HandleError(c, apperrors.New(apperrors.KindNotFound, "task_not_found", "Task not found"))
		return domain.Principal{}, 0, false
	}
	return principal, uint(id), true
}
