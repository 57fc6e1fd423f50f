package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	hhusecase "chorehub-backend/internal/household/usecase"
	"chorehub-backend/internal/task/usecase"

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

// GetTasks returns the household's active tasks
// GET /api/tasks?householdId=...&category=...&completed=...&assignedTo=...
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	householdID := c.Query("householdId")
	if householdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "householdId required"})
		return
	}

	opts := usecase.ListOptions{
		Category:   c.Query("category"),
		AssignedTo: c.Query("assignedTo"),
	}
	if completed := c.Query("completed"); completed != "" {
		parsed, err := strconv.ParseBool(completed)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed filter"})
			return
		}
		opts.Completed = &parsed
	}

	tasks, err := h.taskUsecase.ListTasks(userID, householdID, opts, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetArchivedTasks returns the household's archived tasks
// GET /api/tasks/archived?householdId=...
func (h *TaskHandler) GetArchivedTasks(c *gin.Context) {
	userID := c.GetString("userID")

	householdID := c.Query("householdId")
	if householdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "householdId required"})
		return
	}

	tasks, err := h.taskUsecase.ListArchived(userID, householdID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetStatistics returns completed-task counts per member
// GET /api/tasks/statistics?householdId=...&range=7days
func (h *TaskHandler) GetStatistics(c *gin.Context) {
	userID := c.GetString("userID")

	householdID := c.Query("householdId")
	if householdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "householdId required"})
		return
	}

	stats, err := h.taskUsecase.GetStatistics(userID, householdID, c.DefaultQuery("range", "all"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
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

	task, err := h.taskUsecase.CreateTask(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var updates usecase.TaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, updates, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// respondError maps usecase errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, hhusecase.ErrHouseholdNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, hhusecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidPriority),
		errors.Is(err, usecase.ErrInvalidFrequency),
		errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrInvalidRange),
		errors.Is(err, usecase.ErrInvalidDeadline):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
