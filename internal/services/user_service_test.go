package services

import (
	"testing"

	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/ergo-app/ergo-server/internal/utils"
	"github.com/stretchr/testify/require"
)

func firstPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Offset: 0}
}

func TestUserService_SearchUsers(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))

	requester := createTestUser(t, db, "me@example.com", "me")
	alice := createTestUser(t, db, "alice@example.com", "alice")
	createTestUser(t, db, "bob@other.org", "bobby")

	users, total, err := service.SearchUsers("ALICE", requester.ID, firstPage())
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	require.Equal(t, alice.ID, users[0].ID)

	// Matches on email domain too, excluding the requester
	users, total, err = service.SearchUsers("example.com", requester.ID, firstPage())
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, alice.ID, users[0].ID)
}

func TestUserService_SearchUsers_Pagination(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))

	requester := createTestUser(t, db, "me@example.com", "me")
	createTestUser(t, db, "dev1@example.com", "dev-a")
	createTestUser(t, db, "dev2@example.com", "dev-b")
	createTestUser(t, db, "dev3@example.com", "dev-c")

	params := utils.PaginationParams{Page: 2, Limit: 1, Offset: 1}
	users, total, err := service.SearchUsers("dev", requester.ID, params)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, users, 1)
	require.Equal(t, "dev-b", users[0].Username, "results ordered by username")
}

func TestUserService_SearchUsers_EmptyTerm(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	requester := createTestUser(t, db, "me@example.com", "me")

	_, _, err := service.SearchUsers("   ", requester.ID, firstPage())
	require.ErrorIs(t, err, ErrEmptySearchTerm)
}
