package repository

import (
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDependencyRepository is a GORM implementation of DependencyRepository
type GormDependencyRepository struct {
	db *gorm.DB
}

// NewDependencyRepository creates a new DependencyRepository
func NewDependencyRepository(db *gorm.DB) DependencyRepository {
	return &GormDependencyRepository{db: db}
}

// AddEdge inserts a directed dependency edge
func (r *GormDependencyRepository) AddEdge(edge *models.TaskDependency) error {
	return r.db.Create(edge).Error
}

// RemoveEdge removes an edge by composite key. Zero matched rows is still success.
func (r *GormDependencyRepository) RemoveEdge(taskID, dependsOnTaskID uuid.UUID) error {
	return r.db.Where("task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID).
		Delete(&models.TaskDependency{}).Error
}

// ListDependsOn returns the tasks taskID depends on: the depends_on endpoint
// of every edge where taskID is the dependent.
func (r *GormDependencyRepository) ListDependsOn(taskID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Joins("JOIN task_dependencies ON task_dependencies.depends_on_task_id = tasks.id").
		Where("task_dependencies.task_id = ?", taskID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListBlocking returns the tasks that depend on taskID: the dependent
// endpoint of every edge where taskID is the dependency target.
func (r *GormDependencyRepository) ListBlocking(taskID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Joins("JOIN task_dependencies ON task_dependencies.task_id = tasks.id").
		Where("task_dependencies.depends_on_task_id = ?", taskID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Reachable walks depends-on edges breadth-first from fromID and reports
// whether toID is encountered. Used to reject edges that would close a cycle.
func (r *GormDependencyRepository) Reachable(fromID, toID uuid.UUID) (bool, error) {
	visited := map[uuid.UUID]struct{}{fromID: {}}
	frontier := []uuid.UUID{fromID}

	for len(frontier) > 0 {
		var next []uuid.UUID
		if err := r.db.Model(&models.TaskDependency{}).
			Where("task_id IN ?", frontier).
			Pluck("depends_on_task_id", &next).Error; err != nil {
			return false, err
		}

		frontier = nil
		for _, id := range next {
			if id == toID {
				return true, nil
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			frontier = append(frontier, id)
		}
	}

	return false, nil
}
