package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/ergo-app/ergo-server/internal/utils"
	"github.com/google/uuid"
)

var ErrEmptySearchTerm = errors.New("search term cannot be empty")

// UserService exposes user directory operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SearchUsers finds users whose email or username contains term,
// case-insensitively, excluding the requesting user.
func (s *UserService) SearchUsers(term string, requesterID uuid.UUID, params utils.PaginationParams) ([]models.UserProfile, int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, 0, ErrEmptySearchTerm
	}

	users, total, err := s.userRepo.Search(term, requesterID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}

	return users, total, nil
}
