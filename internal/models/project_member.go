package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectRole string

const (
	RoleOwner  ProjectRole = "Owner"
	RoleMember ProjectRole = "Member"
)

// ProjectMember links a user to a project with a role. Exactly one member per
// project carries the Owner role, matching the project's owner_id.
type ProjectMember struct {
	ProjectID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Project Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
