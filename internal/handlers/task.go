package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ergo-app/ergo-server/internal/dto"
	apierrors "github.com/ergo-app/ergo-server/internal/errors"
	"github.com/ergo-app/ergo-server/internal/middleware"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler exposes task CRUD, assignment, and dependency management.
type TaskHandler struct {
	taskService *services.TaskService
	depService  *services.DependencyService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, depService *services.DependencyService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		depService:  depService,
	}
}

// CreateTask creates a task inside the project loaded by the access
// middleware. The creator is the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Name           string              `json:"name" binding:"required"`
		Description    string              `json:"description"`
		Priority       models.TaskPriority `json:"priority"`
		Status         models.TaskStatus   `json:"status"`
		Budget         float64             `json:"budget"`
		Expense        float64             `json:"expense"`
		EstimatedHours float64             `json:"estimated_completion_time_hours"`
		DueDate        time.Time           `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:           req.Name,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         req.Status,
		Budget:         req.Budget,
		Expense:        req.Expense,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		ProjectID:      project.ID,
		CreatorID:      userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, nil, nil))
}

// ListTasks returns the tasks of the project loaded by the access middleware,
// each with its dependency sets.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksForProject(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// GetTask returns the task with creator, assignees, and dependency sets.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	agg, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOFromAggregate(*agg))
}

// UpdateTask applies a merge patch to the task. Absent and null fields keep
// their stored values.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	var input services.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	dependsOn, blocking := h.depService.DependencySets(updated.ID)
	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated, dependsOn, blocking))
}

// DeleteTask removes the task; its assignments and dependency edges go with it.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AssignUser adds an assignee to the task.
func (h *TaskHandler) AssignUser(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.taskService.Assign(task.ID, req.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task_id": assignment.TaskID,
		"user_id": assignment.UserID,
	})
}

// UnassignUser removes an assignee from the task.
func (h *TaskHandler) UnassignUser(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.taskService.Unassign(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User unassigned successfully",
	})
}

// ListAssignees returns the task's assignees with their public profiles.
func (h *TaskHandler) ListAssignees(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	assignments, err := h.taskService.ListAssignees(task.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list assignees")
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignees": dto.ToTaskAssignmentDTOs(assignments)})
}

// AddDependency records that this task depends on another task of the same
// project.
func (h *TaskHandler) AddDependency(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type AddDependencyRequest struct {
		DependsOnTaskID uuid.UUID `json:"depends_on_task_id" binding:"required"`
	}

	var req AddDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	edge, err := h.depService.AddEdge(task.ID, req.DependsOnTaskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task_id":            edge.TaskID,
		"depends_on_task_id": edge.DependsOnTaskID,
	})
}

// RemoveDependency deletes a dependency edge of the task.
func (h *TaskHandler) RemoveDependency(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	dependsOnTaskID, err := uuid.Parse(c.Param("dep_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.depService.RemoveEdge(task.ID, dependsOnTaskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dependency removed successfully",
	})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(middleware.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not loaded")
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}

	return task, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameLength),
		errors.Is(err, services.ErrTaskBudgetNegative),
		errors.Is(err, services.ErrTaskExpenseNegative),
		errors.Is(err, services.ErrTaskEstimateNegative),
		errors.Is(err, services.ErrTaskActualNegative),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrSelfDependency),
		errors.Is(err, services.ErrCrossProjectDependency):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrDependencyExists),
		errors.Is(err, services.ErrDependencyCycle):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
