package delivery

import (
	"errors"
	"net/http"

	"kanflow-backend/internal/task/domain"
	"kanflow-backend/internal/task/repository"
	"kanflow-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// GetTasks returns the merged task list for the current session
// GET /api/tasks
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	tasks, err := h.taskUsecase.GetTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask patches an existing task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), userID, taskID, patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// DeleteAllTasks clears the user's tasks
// DELETE /api/tasks
func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.taskUsecase.DeleteAllTasks(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all tasks deleted"})
}

// HideExternalTask hides an aggregated task from future fetches
// POST /api/tasks/:id/hide
func (h *TaskHandler) HideExternalTask(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.taskUsecase.HideExternalTask(taskID); err != nil {
		if errors.Is(err, usecase.ErrNotExternal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task hidden"})
}

// SearchTasks filters tasks by a fuzzy query
// GET /api/tasks/search?q=
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID := c.GetString("userID")
	query := c.Query("q")

	tasks, err := h.taskUsecase.SearchTasks(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// GetStats returns the dashboard status breakdown
// GET /api/tasks/stats
func (h *TaskHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.taskUsecase.GetStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrExternalReadOnly):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrTaskNotFound), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFoundOrDenied):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
