package repository

import (
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject lists all tasks of a project
func (r *GormTaskRepository) ListByProject(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Creator").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the full task record back, keyed by primary id
func (r *GormTaskRepository) Update(task *models.Task) error {
	result := r.db.Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task by ID. Edge rows referencing the task are cleaned up
// by the store's ON DELETE CASCADE constraints, not here. Zero matched rows
// is still success.
func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// Assign adds a task assignment
func (r *GormTaskRepository) Assign(assignment *models.TaskAssignment) error {
	return r.db.Create(assignment).Error
}

// Unassign removes an assignment. Zero matched rows is still success.
func (r *GormTaskRepository) Unassign(taskID, userID uuid.UUID) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskAssignment{}).Error
}

// ListAssignees lists a task's assignments with their profiles
func (r *GormTaskRepository) ListAssignees(taskID uuid.UUID) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
