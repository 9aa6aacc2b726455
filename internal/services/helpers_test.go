package services

import (
	"testing"
	"time"

	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskDependency{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string) *models.UserProfile {
	t.Helper()

	user := &models.UserProfile{
		Email:        email,
		Username:     username,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Project {
	t.Helper()

	repo := repository.NewProjectRepository(db)
	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	require.NoError(t, repo.CreateWithOwner(project))
	return project
}

func createTestTask(t *testing.T, db *gorm.DB, projectID, creatorID uuid.UUID, name string) *models.Task {
	t.Helper()

	task := &models.Task{
		ProjectID: projectID,
		Name:      name,
		Priority:  models.PriorityMedium,
		Status:    models.StatusTodo,
		DueDate:   time.Now().Add(24 * time.Hour),
		CreatedBy: creatorID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
