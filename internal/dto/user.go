package dto

import (
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/google/uuid"
)

// UserProfileDTO is the public view of a user in API responses.
type UserProfileDTO struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Position        string    `json:"position"`
	ProfilePhotoURL string    `json:"profile_photo_url"`
}

// ToUserProfileDTO converts a UserProfile model to its public view.
func ToUserProfileDTO(user models.UserProfile) UserProfileDTO {
	return UserProfileDTO{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Position:        user.Position,
		ProfilePhotoURL: user.ProfilePhotoURL,
	}
}

// ToUserProfileDTOs converts a slice of profiles.
func ToUserProfileDTOs(users []models.UserProfile) []UserProfileDTO {
	dtos := make([]UserProfileDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserProfileDTO(u)
	}
	return dtos
}
