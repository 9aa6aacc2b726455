package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ergo-app/ergo-server/internal/dto"
	"github.com/ergo-app/ergo-server/internal/middleware"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db             *gorm.DB
	projectService *services.ProjectService
	handler        *ProjectHandler
	guard          *middleware.AccessGuard
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db := newTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectService := services.NewProjectService(projectRepo)

	return projectTestEnv{
		db:             db,
		projectService: projectService,
		handler:        NewProjectHandler(projectService),
		guard:          middleware.NewAccessGuard(projectRepo, taskRepo),
	}
}

func newProjectRouter(env projectTestEnv, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	projects := r.Group("/api/projects")
	projects.Use(actAs(userID))
	{
		projects.POST("", env.handler.CreateProject)
		projects.GET("", env.handler.ListProjects)
		projects.GET("/:id", env.guard.RequireProjectAccess(), env.handler.GetProject)
		projects.PATCH("/:id", env.guard.RequireProjectAccess(), env.guard.RequireProjectOwner(), env.handler.UpdateProject)
		projects.DELETE("/:id", env.guard.RequireProjectAccess(), env.guard.RequireProjectOwner(), env.handler.DeleteProject)
		projects.GET("/:id/members", env.guard.RequireProjectAccess(), env.handler.ListMembers)
		projects.POST("/:id/members", env.guard.RequireProjectAccess(), env.guard.RequireProjectOwner(), env.handler.AddMember)
		projects.DELETE("/:id/members/:user_id", env.guard.RequireProjectAccess(), env.guard.RequireProjectOwner(), env.handler.RemoveMember)
	}
	return r
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	r := newProjectRouter(env, owner.ID)

	w := doJSON(t, r, http.MethodPost, "/api/projects", map[string]any{
		"name":        "Website Redesign",
		"description": "Refresh the marketing site",
		"budget":      5000,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Website Redesign", response.Name)
	require.Equal(t, owner.ID, response.OwnerID)
}

func TestProjectHandler_CreateProject_InvalidName(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	r := newProjectRouter(env, owner.ID)

	w := doJSON(t, r, http.MethodPost, "/api/projects", map[string]any{
		"name": "ab",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_GetProject_NonMemberGets404(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	outsider := createTestUser(t, env.db, "outsider@example.com", "outsider")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Private Project",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	r := newProjectRouter(env, outsider.ID)
	w := doJSON(t, r, http.MethodGet, "/api/projects/"+project.ID.String(), nil)

	require.Equal(t, http.StatusNotFound, w.Code, "non-members must not learn the project exists")
}

func TestProjectHandler_UpdateProject_MemberForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	member := createTestUser(t, env.db, "member@example.com", "member")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Guarded Project",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	_, err = env.projectService.AddMember(project.ID, member.ID, models.RoleMember)
	require.NoError(t, err)

	r := newProjectRouter(env, member.ID)
	w := doJSON(t, r, http.MethodPatch, "/api/projects/"+project.ID.String(), map[string]any{
		"name": "Hijacked",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_UpdateProject_MergePatch(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:        "Original Name",
		Description: "Original description",
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)

	r := newProjectRouter(env, owner.ID)
	w := doJSON(t, r, http.MethodPatch, "/api/projects/"+project.ID.String(), map[string]any{
		"name":        "Renamed",
		"description": nil,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Renamed", response.Name)
	require.Equal(t, "Original description", response.Description, "null must not clear the stored value")
}

func TestProjectHandler_Members(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	member := createTestUser(t, env.db, "member@example.com", "member")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Team Project",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	r := newProjectRouter(env, owner.ID)

	w := doJSON(t, r, http.MethodPost, "/api/projects/"+project.ID.String()+"/members", map[string]any{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Adding the same member again conflicts
	w = doJSON(t, r, http.MethodPost, "/api/projects/"+project.ID.String()+"/members", map[string]any{
		"user_id": member.ID,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+project.ID.String()+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []dto.ProjectMemberDTO `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)

	// The owner cannot be removed
	w = doJSON(t, r, http.MethodDelete, "/api/projects/"+project.ID.String()+"/members/"+owner.ID.String(), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/projects/"+project.ID.String()+"/members/"+member.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_ListProjects_MemberScope(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com", "owner")
	member := createTestUser(t, env.db, "member@example.com", "member")

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    "Shared Project",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	_, err = env.projectService.AddMember(project.ID, member.ID, models.RoleMember)
	require.NoError(t, err)

	r := newProjectRouter(env, member.ID)

	// Default scope lists owned projects only
	w := doJSON(t, r, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var owned struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &owned))
	require.Empty(t, owned.Projects)

	w = doJSON(t, r, http.MethodGet, "/api/projects?scope=member", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var joined struct {
		Projects []dto.ProjectWithRoleDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	require.Len(t, joined.Projects, 1)
	require.Equal(t, models.RoleMember, joined.Projects[0].Role)
}
