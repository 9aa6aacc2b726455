package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile is the public identity of a user. It is created once at signup
// and only ever mutated by its owner.
type UserProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName       string    `gorm:"type:text" json:"first_name"`
	LastName        string    `gorm:"type:text" json:"last_name"`
	Position        string    `gorm:"type:text" json:"position"`
	ProfilePhotoURL string    `gorm:"type:text" json:"profile_photo_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	OwnedProjects []Project        `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []ProjectMember  `gorm:"foreignKey:UserID" json:"-"`
	Assignments   []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}

func (UserProfile) TableName() string {
	return "userprofile"
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
