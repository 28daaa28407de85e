package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// TaskHandler coordinates task CRUD HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks with their derived project fields. Optional
// page/limit query parameters narrow the result window.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var params *utils.PaginationParams
	if p, ok := utils.GetPaginationParams(c); ok {
		params = &p
	}

	tasks, err := h.taskService.List(params)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a task by ID, 404 with an empty body when absent.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask persists a new task. An unknown projectId leaves the task
// unattached rather than failing.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required,max=100"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		ProjectID   *uint64 `json:"projectId"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites the mutable fields of an existing task,
// applying the same project-resolution rule as create.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title       string  `json:"title" binding:"required,max=100"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		ProjectID   *uint64 `json:"projectId"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTaskNotFound) {
		apierrors.NotFound(c)
		return
	}
	apierrors.BadRequest(c, err.Error())
}
