package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "To-Do"
	StatusInProgress TaskStatus = "In-Progress"
	StatusInReview   TaskStatus = "In-Review"
	StatusBlocked    TaskStatus = "Blocked"
	StatusCompleted  TaskStatus = "Completed"
)

// Task belongs to exactly one project for its whole lifetime.
// Completion times are stored as durations; the API accepts hours.
type Task struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Name                    string         `gorm:"type:varchar(150);not null" json:"name"`
	Description             string         `gorm:"type:text" json:"description"`
	Priority                TaskPriority   `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Status                  TaskStatus     `gorm:"type:varchar(20);not null;default:'To-Do'" json:"status"`
	Budget                  float64        `gorm:"not null;default:0" json:"budget"`
	Expense                 float64        `gorm:"not null;default:0" json:"expense"`
	EstimatedCompletionTime time.Duration  `gorm:"not null;default:0" json:"estimated_completion_time"`
	ActualCompletionTime    *time.Duration `json:"actual_completion_time"`
	DueDate                 time.Time      `json:"due_date"`
	CompletedOn             *time.Time     `json:"completed_on"`
	CreatedBy               uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`

	// Relations
	Project     Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator     UserProfile      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}
