package handlers

import (
	"errors"
	"net/http"

	"github.com/ergo-app/ergo-server/internal/dto"
	apierrors "github.com/ergo-app/ergo-server/internal/errors"
	"github.com/ergo-app/ergo-server/internal/middleware"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler exposes project CRUD and membership management.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the current user. The creator is
// enrolled as the Owner member in the same transaction.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Budget      float64 `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the current user's projects. The default scope is
// owned projects; ?scope=member returns every project the user belongs to,
// annotated with their role.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if c.Query("scope") == "member" {
		memberships, err := h.projectService.ListProjectsForUser(userID)
		if err != nil {
			apierrors.InternalError(c, "Failed to list projects")
			return
		}

		projects := make([]dto.ProjectWithRoleDTO, len(memberships))
		for i, m := range memberships {
			projects[i] = dto.ToProjectWithRoleDTO(m)
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
		return
	}

	projects, err := h.projectService.ListProjectsForOwner(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns the project loaded by the access middleware.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// UpdateProject applies a merge patch to the project. Absent and null fields
// keep their stored values.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	var input services.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject removes the project along with its tasks and memberships.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// AddMember enrolls a user into the project.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uuid.UUID          `json:"user_id" binding:"required"`
		Role   models.ProjectRole `json:"role"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.projectService.AddMember(project.ID, req.UserID, req.Role)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project_id": member.ProjectID,
		"user_id":    member.UserID,
		"role":       member.Role,
		"joined_at":  member.JoinedAt,
	})
}

// RemoveMember removes a user from the project. The owner cannot be removed.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(project.ID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// ListMembers returns the project's members with their public profiles.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.ToProjectMemberDTOs(members)})
}

func projectFromContext(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(middleware.ContextKeyProject)
	if !exists {
		apierrors.InternalError(c, "Project not loaded")
		return models.Project{}, false
	}

	project, ok := value.(models.Project)
	if !ok {
		apierrors.InternalError(c, "Invalid project data")
		return models.Project{}, false
	}

	return project, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameLength),
		errors.Is(err, services.ErrProjectDescTooLong),
		errors.Is(err, services.ErrProjectBudgetNegative),
		errors.Is(err, services.ErrInvalidProjectRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrProjectMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
