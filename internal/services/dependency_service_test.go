package services

import (
	"testing"

	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type depTestEnv struct {
	db      *gorm.DB
	service *DependencyService
	owner   *models.UserProfile
	project *models.Project
}

func setupDepTestEnv(t *testing.T) depTestEnv {
	t.Helper()

	db := newTestDB(t)
	taskRepo := repository.NewTaskRepository(db)
	depRepo := repository.NewDependencyRepository(db)

	owner := createTestUser(t, db, "owner@example.com", "owner")
	project := createTestProject(t, db, owner.ID, "Graph Project")

	return depTestEnv{
		db:      db,
		service: NewDependencyService(depRepo, taskRepo),
		owner:   owner,
		project: project,
	}
}

func TestDependencyService_AddEdge(t *testing.T) {
	env := setupDepTestEnv(t)
	design := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Design schema")
	build := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Build endpoints")

	edge, err := env.service.AddEdge(build.ID, design.ID)
	require.NoError(t, err)
	require.Equal(t, build.ID, edge.TaskID)
	require.Equal(t, design.ID, edge.DependsOnTaskID)

	_, err = env.service.AddEdge(build.ID, design.ID)
	require.ErrorIs(t, err, ErrDependencyExists)
}

func TestDependencyService_AddEdge_SelfRejected(t *testing.T) {
	env := setupDepTestEnv(t)
	task := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Lonely task")

	_, err := env.service.AddEdge(task.ID, task.ID)
	require.ErrorIs(t, err, ErrSelfDependency)
}

func TestDependencyService_AddEdge_CrossProjectRejected(t *testing.T) {
	env := setupDepTestEnv(t)
	otherProject := createTestProject(t, env.db, env.owner.ID, "Other Project")

	here := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Local task")
	there := createTestTask(t, env.db, otherProject.ID, env.owner.ID, "Foreign task")

	_, err := env.service.AddEdge(here.ID, there.ID)
	require.ErrorIs(t, err, ErrCrossProjectDependency)
}

func TestDependencyService_AddEdge_CycleRejected(t *testing.T) {
	env := setupDepTestEnv(t)
	a := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Task A")
	b := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Task B")
	c := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Task C")

	// b depends on a, c depends on b
	_, err := env.service.AddEdge(b.ID, a.ID)
	require.NoError(t, err)
	_, err = env.service.AddEdge(c.ID, b.ID)
	require.NoError(t, err)

	// a depending on c would close the loop
	_, err = env.service.AddEdge(a.ID, c.ID)
	require.ErrorIs(t, err, ErrDependencyCycle)
}

func TestDependencyService_DependencySets_Direction(t *testing.T) {
	env := setupDepTestEnv(t)
	design := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Design schema")
	build := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Build endpoints")

	_, err := env.service.AddEdge(build.ID, design.ID)
	require.NoError(t, err)

	dependsOn, blocking := env.service.DependencySets(build.ID)
	require.Len(t, dependsOn, 1)
	require.Equal(t, design.ID, dependsOn[0].ID)
	require.Empty(t, blocking)

	dependsOn, blocking = env.service.DependencySets(design.ID)
	require.Empty(t, dependsOn)
	require.Len(t, blocking, 1)
	require.Equal(t, build.ID, blocking[0].ID)
}

func TestDependencyService_RemoveEdge_Idempotent(t *testing.T) {
	env := setupDepTestEnv(t)
	design := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Design schema")
	build := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Build endpoints")

	_, err := env.service.AddEdge(build.ID, design.ID)
	require.NoError(t, err)

	require.NoError(t, env.service.RemoveEdge(build.ID, design.ID))
	require.NoError(t, env.service.RemoveEdge(build.ID, design.ID))

	dependsOn, _ := env.service.DependencySets(build.ID)
	require.Empty(t, dependsOn)
}

func TestDependencyService_AddEdge_TaskNotFound(t *testing.T) {
	env := setupDepTestEnv(t)
	task := createTestTask(t, env.db, env.project.ID, env.owner.ID, "Real task")

	_, err := env.service.AddEdge(task.ID, uuid.New())
	require.ErrorIs(t, err, ErrTaskNotFound)
}
