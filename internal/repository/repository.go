package repository

import (
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/utils"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Create inserts a new user profile
	Create(user *models.UserProfile) error

	// FindByID finds a user profile by ID
	FindByID(id uuid.UUID) (*models.UserProfile, error)

	// FindByEmail finds a user profile by email
	FindByEmail(email string) (*models.UserProfile, error)

	// FindByUsername finds a user profile by username
	FindByUsername(username string) (*models.UserProfile, error)

	// Search finds profiles whose email or username contains term
	// (case-insensitive), excluding excludeID
	Search(term string, excludeID uuid.UUID, params utils.PaginationParams) ([]models.UserProfile, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithOwner inserts the project and its Owner membership in a
	// single transaction
	CreateWithOwner(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uuid.UUID) (*models.Project, error)

	// ListByOwner lists projects owned by a user
	ListByOwner(ownerID uuid.UUID) ([]models.Project, error)

	// ListMembershipsByUser lists project memberships of a user with the
	// project preloaded
	ListMembershipsByUser(userID uuid.UUID) ([]models.ProjectMember, error)

	// Update writes the full project record back
	Update(project *models.Project) error

	// Delete removes a project by ID; deleting an absent project is not an error
	Delete(id uuid.UUID) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member; removing an absent member is not an error
	RemoveMember(projectID, userID uuid.UUID) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uuid.UUID) (*models.ProjectMember, error)

	// ListMembers lists all members of a project with profiles preloaded
	ListMembers(projectID uuid.UUID) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// ListByProject lists all tasks of a project
	ListByProject(projectID uuid.UUID) ([]models.Task, error)

	// Update writes the full task record back
	Update(task *models.Task) error

	// Delete removes a task by ID; deleting an absent task is not an error
	Delete(id uuid.UUID) error

	// Assign adds a task assignment
	Assign(assignment *models.TaskAssignment) error

	// Unassign removes an assignment; removing an absent one is not an error
	Unassign(taskID, userID uuid.UUID) error

	// ListAssignees lists a task's assignments with profiles preloaded
	ListAssignees(taskID uuid.UUID) ([]models.TaskAssignment, error)
}

// DependencyRepository defines the interface for the task dependency graph
type DependencyRepository interface {
	// AddEdge inserts a directed dependency edge
	AddEdge(edge *models.TaskDependency) error

	// RemoveEdge removes an edge; removing an absent edge is not an error
	RemoveEdge(taskID, dependsOnTaskID uuid.UUID) error

	// ListDependsOn returns the tasks that taskID depends on
	ListDependsOn(taskID uuid.UUID) ([]models.Task, error)

	// ListBlocking returns the tasks that depend on taskID
	ListBlocking(taskID uuid.UUID) ([]models.Task, error)

	// Reachable reports whether toID can be reached from fromID by
	// following depends-on edges
	Reachable(fromID, toID uuid.UUID) (bool, error)
}
