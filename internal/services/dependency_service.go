package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSelfDependency         = errors.New("a task cannot depend on itself")
	ErrDependencyExists       = errors.New("dependency already exists")
	ErrDependencyCycle        = errors.New("dependency would create a cycle")
	ErrCrossProjectDependency = errors.New("both tasks must belong to the same project")
)

// DependencyService maintains the directed dependency graph between tasks.
// An edge (task, dependsOn) means dependsOn must logically complete first.
type DependencyService struct {
	depRepo  repository.DependencyRepository
	taskRepo repository.TaskRepository
}

// NewDependencyService creates a new DependencyService.
func NewDependencyService(depRepo repository.DependencyRepository, taskRepo repository.TaskRepository) *DependencyService {
	return &DependencyService{
		depRepo:  depRepo,
		taskRepo: taskRepo,
	}
}

// AddEdge records that taskID depends on dependsOnTaskID. Self-edges,
// cross-project edges, and edges that would close a cycle are rejected.
func (s *DependencyService) AddEdge(taskID, dependsOnTaskID uuid.UUID) (*models.TaskDependency, error) {
	if taskID == dependsOnTaskID {
		return nil, ErrSelfDependency
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	dependsOn, err := s.taskRepo.FindByID(dependsOnTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find dependency task: %w", err)
	}

	if task.ProjectID != dependsOn.ProjectID {
		return nil, ErrCrossProjectDependency
	}

	// The new edge closes a cycle exactly when the dependent is already
	// reachable from the dependency target.
	reachable, err := s.depRepo.Reachable(dependsOnTaskID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for dependency cycle: %w", err)
	}
	if reachable {
		return nil, ErrDependencyCycle
	}

	edge := &models.TaskDependency{
		TaskID:          taskID,
		DependsOnTaskID: dependsOnTaskID,
	}

	if err := s.depRepo.AddEdge(edge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDependencyExists
		}
		return nil, fmt.Errorf("failed to add dependency: %w", err)
	}

	return edge, nil
}

// RemoveEdge deletes a dependency edge. Removing an absent edge succeeds.
func (s *DependencyService) RemoveEdge(taskID, dependsOnTaskID uuid.UUID) error {
	if err := s.depRepo.RemoveEdge(taskID, dependsOnTaskID); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	return nil
}

// DependencySets returns the tasks taskID depends on and the tasks it
// blocks. Enrichment is best-effort: a failed lookup degrades to an empty
// list instead of failing the caller.
func (s *DependencyService) DependencySets(taskID uuid.UUID) (dependsOn, blocking []models.Task) {
	dependsOn, err := s.depRepo.ListDependsOn(taskID)
	if err != nil {
		log.Printf("failed to load dependencies of task %s: %v", taskID, err)
		dependsOn = []models.Task{}
	}

	blocking, err = s.depRepo.ListBlocking(taskID)
	if err != nil {
		log.Printf("failed to load blocked tasks of task %s: %v", taskID, err)
		blocking = []models.Task{}
	}

	return dependsOn, blocking
}
