package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskAssignment links a user to a task they are working on. Assignment is
// independent of project membership.
type TaskAssignment struct {
	TaskID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task        `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaskAssignment) TableName() string {
	return "task_members"
}
