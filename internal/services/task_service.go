package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ergo-app/ergo-server/internal/constants"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/patch"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskNameLength       = fmt.Errorf("task name must be between %d and %d characters", constants.MinTaskNameLength, constants.MaxTaskNameLength)
	ErrTaskBudgetNegative   = errors.New("task budget cannot be negative")
	ErrTaskExpenseNegative  = errors.New("task expense cannot be negative")
	ErrTaskEstimateNegative = errors.New("estimated completion time cannot be negative")
	ErrTaskActualNegative   = errors.New("actual completion time cannot be negative")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrAlreadyAssigned      = errors.New("user is already assigned to this task")
)

// TaskService handles task business logic, scoped to a parent project.
type TaskService struct {
	taskRepo   repository.TaskRepository
	depService *DependencyService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, depService *DependencyService) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		depService: depService,
	}
}

// TaskWithDependencies pairs a task with its dependency sets.
type TaskWithDependencies struct {
	Task      *models.Task
	DependsOn []models.Task
	Blocking  []models.Task
}

// CreateTaskInput represents input for creating a task. Completion time is
// accepted in hours and stored as a duration.
type CreateTaskInput struct {
	Name           string
	Description    string
	Priority       models.TaskPriority
	Status         models.TaskStatus
	Budget         float64
	Expense        float64
	EstimatedHours float64
	DueDate        time.Time
	ProjectID      uuid.UUID
	CreatorID      uuid.UUID
}

// UpdateTaskInput is the merge patch accepted by UpdateTask.
type UpdateTaskInput struct {
	Name           patch.Field[string]              `json:"name"`
	Description    patch.Field[string]              `json:"description"`
	Priority       patch.Field[models.TaskPriority] `json:"priority"`
	Status         patch.Field[models.TaskStatus]   `json:"status"`
	Budget         patch.Field[float64]             `json:"budget"`
	Expense        patch.Field[float64]             `json:"expense"`
	EstimatedHours patch.Field[float64]             `json:"estimated_completion_time_hours"`
	ActualHours    patch.Field[float64]             `json:"actual_completion_time_hours"`
	DueDate        patch.Field[time.Time]           `json:"due_date"`
	CompletedOn    patch.Field[time.Time]           `json:"completed_on"`
}

// CreateTask validates the input and inserts a task under its project.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if len(input.Name) < constants.MinTaskNameLength || len(input.Name) > constants.MaxTaskNameLength {
		return nil, ErrTaskNameLength
	}
	if input.Budget < 0 {
		return nil, ErrTaskBudgetNegative
	}
	if input.Expense < 0 {
		return nil, ErrTaskExpenseNegative
	}
	if input.EstimatedHours < 0 {
		return nil, ErrTaskEstimateNegative
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidTaskPriority
	}
	if input.Status == "" {
		input.Status = models.StatusTodo
	}
	if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.Task{
		ProjectID:               input.ProjectID,
		Name:                    input.Name,
		Description:             input.Description,
		Priority:                input.Priority,
		Status:                  input.Status,
		Budget:                  input.Budget,
		Expense:                 input.Expense,
		EstimatedCompletionTime: hoursToDuration(input.EstimatedHours),
		DueDate:                 input.DueDate,
		CreatedBy:               input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task augmented with its dependency sets.
func (s *TaskService) GetTask(taskID uuid.UUID) (*TaskWithDependencies, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	dependsOn, blocking := s.depService.DependencySets(taskID)

	return &TaskWithDependencies{
		Task:      task,
		DependsOn: dependsOn,
		Blocking:  blocking,
	}, nil
}

// ListTasksForProject returns all tasks of a project, each augmented with
// its dependency sets.
func (s *TaskService) ListTasksForProject(projectID uuid.UUID) ([]TaskWithDependencies, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := make([]TaskWithDependencies, len(tasks))
	for i := range tasks {
		dependsOn, blocking := s.depService.DependencySets(tasks[i].ID)
		result[i] = TaskWithDependencies{
			Task:      &tasks[i],
			DependsOn: dependsOn,
			Blocking:  blocking,
		}
	}

	return result, nil
}

// UpdateTask applies a merge patch to a task and persists the result.
func (s *TaskService) UpdateTask(taskID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if name, ok := input.Name.Get(); ok {
		if len(name) < constants.MinTaskNameLength || len(name) > constants.MaxTaskNameLength {
			return nil, ErrTaskNameLength
		}
	}
	if priority, ok := input.Priority.Get(); ok && !models.ValidPriority(priority) {
		return nil, ErrInvalidTaskPriority
	}
	if status, ok := input.Status.Get(); ok && !models.ValidStatus(status) {
		return nil, ErrInvalidTaskStatus
	}
	if budget, ok := input.Budget.Get(); ok && budget < 0 {
		return nil, ErrTaskBudgetNegative
	}
	if expense, ok := input.Expense.Get(); ok && expense < 0 {
		return nil, ErrTaskExpenseNegative
	}

	patch.Apply(&task.Name, input.Name)
	patch.Apply(&task.Description, input.Description)
	patch.Apply(&task.Priority, input.Priority)
	patch.Apply(&task.Status, input.Status)
	patch.Apply(&task.Budget, input.Budget)
	patch.Apply(&task.Expense, input.Expense)
	patch.Apply(&task.DueDate, input.DueDate)
	patch.ApplyPtr(&task.CompletedOn, input.CompletedOn)

	if hours, ok := input.EstimatedHours.Get(); ok {
		if hours < 0 {
			return nil, ErrTaskEstimateNegative
		}
		task.EstimatedCompletionTime = hoursToDuration(hours)
	}
	if hours, ok := input.ActualHours.Get(); ok {
		if hours < 0 {
			return nil, ErrTaskActualNegative
		}
		d := hoursToDuration(hours)
		task.ActualCompletionTime = &d
	}

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task. Deleting an already-absent task succeeds; edge
// cleanup is left to the store's referential constraints.
func (s *TaskService) DeleteTask(taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Assign adds a user to a task. Assigning the same user twice is a conflict.
// Assignment does not require project membership.
func (s *TaskService) Assign(taskID, userID uuid.UUID) (*models.TaskAssignment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignment := &models.TaskAssignment{
		TaskID: taskID,
		UserID: userID,
	}

	if err := s.taskRepo.Assign(assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	return assignment, nil
}

// Unassign removes a user from a task. Removing an absent assignment succeeds.
func (s *TaskService) Unassign(taskID, userID uuid.UUID) error {
	if err := s.taskRepo.Unassign(taskID, userID); err != nil {
		return fmt.Errorf("failed to unassign user: %w", err)
	}
	return nil
}

// ListAssignees returns a task's assignments with each user's profile.
func (s *TaskService) ListAssignees(taskID uuid.UUID) ([]models.TaskAssignment, error) {
	assignments, err := s.taskRepo.ListAssignees(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	return assignments, nil
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
