package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ergo-app/ergo-server/internal/constants"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/patch"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectNameLength     = fmt.Errorf("project name must be between %d and %d characters", constants.MinProjectNameLength, constants.MaxProjectNameLength)
	ErrProjectDescTooLong    = fmt.Errorf("project description must be at most %d characters", constants.MaxProjectDescriptionLength)
	ErrProjectBudgetNegative = errors.New("project budget cannot be negative")
	ErrAlreadyProjectMember  = errors.New("user is already a member of this project")
	ErrProjectMemberNotFound = errors.New("project member not found")
	ErrInvalidProjectRole    = errors.New("invalid project role")
	ErrCannotRemoveOwner     = errors.New("the project owner cannot be removed from the project")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Budget      float64
	OwnerID     uuid.UUID
}

// UpdateProjectInput is the merge patch accepted by UpdateProject. Fields
// left unset (or supplied as null) keep their stored value.
type UpdateProjectInput struct {
	Name        patch.Field[string]    `json:"name"`
	Description patch.Field[string]    `json:"description"`
	Budget      patch.Field[float64]   `json:"budget"`
	CompletedAt patch.Field[time.Time] `json:"completed_at"`
}

// CreateProject validates the input and creates the project together with
// its Owner membership. The two inserts are atomic.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if len(input.Name) < constants.MinProjectNameLength || len(input.Name) > constants.MaxProjectNameLength {
		return nil, ErrProjectNameLength
	}
	if len(input.Description) > constants.MaxProjectDescriptionLength {
		return nil, ErrProjectDescTooLong
	}
	if input.Budget < 0 {
		return nil, ErrProjectBudgetNegative
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Budget:      input.Budget,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.CreateWithOwner(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project by ID.
func (s *ProjectService) GetProject(projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjectsForOwner returns the projects a user owns.
func (s *ProjectService) ListProjectsForOwner(ownerID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProjectsForUser returns every project the user belongs to, owned or not.
func (s *ProjectService) ListProjectsForUser(userID uuid.UUID) ([]models.ProjectMember, error) {
	memberships, err := s.projectRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project memberships: %w", err)
	}
	return memberships, nil
}

// UpdateProject applies a merge patch to a project and persists the result.
func (s *ProjectService) UpdateProject(projectID uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if name, ok := input.Name.Get(); ok {
		if len(name) < constants.MinProjectNameLength || len(name) > constants.MaxProjectNameLength {
			return nil, ErrProjectNameLength
		}
	}
	if desc, ok := input.Description.Get(); ok && len(desc) > constants.MaxProjectDescriptionLength {
		return nil, ErrProjectDescTooLong
	}
	if budget, ok := input.Budget.Get(); ok && budget < 0 {
		return nil, ErrProjectBudgetNegative
	}

	patch.Apply(&project.Name, input.Name)
	patch.Apply(&project.Description, input.Description)
	patch.Apply(&project.Budget, input.Budget)
	patch.ApplyPtr(&project.CompletedAt, input.CompletedAt)

	if err := s.projectRepo.Update(project); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project. Deleting an already-absent project succeeds.
func (s *ProjectService) DeleteProject(projectID uuid.UUID) error {
	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMember adds a user to a project. The role defaults to Member; adding a
// user twice is a conflict.
func (s *ProjectService) AddMember(projectID, userID uuid.UUID, role models.ProjectRole) (*models.ProjectMember, error) {
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleOwner && role != models.RoleMember {
		return nil, ErrInvalidProjectRole
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyProjectMember
		}
		return nil, fmt.Errorf("failed to add project member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a user from a project. Removing a user who is not a
// member succeeds. The owner cannot be removed.
func (s *ProjectService) RemoveMember(projectID, userID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID == userID {
		return ErrCannotRemoveOwner
	}

	if err := s.projectRepo.RemoveMember(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}

	return nil
}

// ListMembers returns all members of a project with their public profiles.
func (s *ProjectService) ListMembers(projectID uuid.UUID) ([]models.ProjectMember, error) {
	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}
