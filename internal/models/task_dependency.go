package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskDependency is a directed edge: TaskID depends on DependsOnTaskID, so
// the latter must logically complete first.
type TaskDependency struct {
	TaskID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	DependsOnTaskID uuid.UUID `gorm:"type:uuid;primaryKey" json:"depends_on_task_id"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Task      Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	DependsOn Task `gorm:"foreignKey:DependsOnTaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TaskDependency) TableName() string {
	return "task_dependencies"
}
