package services

import (
	"testing"

	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestDB(t)))
}

func TestAuthService_Signup(t *testing.T) {
	service := setupAuthService(t)

	user, err := service.Signup(SignupInput{
		Email:     "  Alice@Example.COM ",
		Username:  "alice",
		Password:  "supersecret",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email, "email is normalized")
	require.NotEqual(t, uuid.Nil, user.ID)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthService_Signup_Conflicts(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Signup(SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = service.Signup(SignupInput{
		Email:    "ALICE@example.com",
		Username: "alice2",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = service.Signup(SignupInput{
		Email:    "other@example.com",
		Username: "alice",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Signup(SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthService(t)

	created, err := service.Signup(SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, err := service.Login(LoginInput{Email: "Alice@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	_, err = service.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.GetUser(uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
}
