package middleware

import (
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/ergo-app/ergo-server/internal/errors"
)

// Context keys set by the access guards.
const (
	ContextKeyProject       = "project"
	ContextKeyProjectMember = "project_member"
	ContextKeyTask          = "task"
)

// AccessGuard holds the repositories needed by the project and task access
// checks. It is constructed once at startup and injected into the router.
type AccessGuard struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

// NewAccessGuard creates a new AccessGuard.
func NewAccessGuard(projects repository.ProjectRepository, tasks repository.TaskRepository) *AccessGuard {
	return &AccessGuard{
		projects: projects,
		tasks:    tasks,
	}
}

// RequireProjectAccess checks that the :id project exists and the current
// user is one of its members, then stores both in the context.
func (g *AccessGuard) RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := g.projects.FindByID(projectID)
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		member, err := g.projects.FindMember(projectID, userID)
		if err != nil {
			// 404 instead of 403 to avoid leaking project existence
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyProject, *project)
		c.Set(ContextKeyProjectMember, *member)
		c.Next()
	}
}

// RequireProjectOwner checks that the current member holds the Owner role.
// Must run after RequireProjectAccess.
func (g *AccessGuard) RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberValue, exists := c.Get(ContextKeyProjectMember)
		if !exists {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		member, ok := memberValue.(models.ProjectMember)
		if !ok {
			apierrors.InternalError(c, "Invalid project member data")
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner {
			apierrors.Forbidden(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireTaskAccess checks that the :id task exists and the current user is
// a member of the task's project, then stores the task in the context.
func (g *AccessGuard) RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := g.tasks.FindByID(taskID)
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if _, err := g.projects.FindMember(task.ProjectID, userID); err != nil {
			// 404 instead of 403 to avoid leaking task existence
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, *task)
		c.Next()
	}
}
