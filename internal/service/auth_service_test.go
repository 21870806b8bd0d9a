package service_test

import (
	"context"
	"testing"

	"github.com/chirp-social/internal/models"
	"github.com/chirp-social/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAppliesImageDefaults(t *testing.T) {
	e := newEnv(t)

	user, token, err := e.auth.Signup(context.Background(), &service.SignupRequest{
		Username: "testuser",
		Email:    "test@test.com",
		Password: "testuser-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)
	assert.NotEqual(t, "testuser-password", user.PasswordHash, "password must be stored hashed")

	// a new user has no messages and no followers
	assert.Empty(t, user.Messages)
	count, err := e.followRepo.CountFollowers(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSignupRejectsTakenUsernameAndEmail(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "testuser")

	_, _, err := e.auth.Signup(context.Background(), &service.SignupRequest{
		Username: "testuser",
		Email:    "other@test.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	_, _, err = e.auth.Signup(context.Background(), &service.SignupRequest{
		Username: "otheruser",
		Email:    "testuser@test.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginDoesNotRevealWhetherUsernameExists(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "testuser")

	_, _, wrongPassword := e.auth.Login(context.Background(), &service.LoginRequest{
		Username: "testuser",
		Password: "wrong",
	})
	_, _, unknownUser := e.auth.Login(context.Background(), &service.LoginRequest{
		Username: "nosuchuser",
		Password: "wrong",
	})

	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser, "both failures look identical")
}

func TestLoginAndCurrentUser(t *testing.T) {
	e := newEnv(t)
	created := e.signup(t, "testuser")

	user, token, err := e.auth.Login(context.Background(), &service.LoginRequest{
		Username: "testuser",
		Password: "testuser-password",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	resolved, ok, err := e.auth.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestLogoutIsUnconditional(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "testuser")

	_, token, err := e.auth.Login(context.Background(), &service.LoginRequest{
		Username: "testuser",
		Password: "testuser-password",
	})
	require.NoError(t, err)

	require.NoError(t, e.auth.Logout(context.Background(), token))

	_, ok, err := e.auth.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok, "session is gone after logout")

	// logging out again, or with no session at all, never errors
	require.NoError(t, e.auth.Logout(context.Background(), token))
	require.NoError(t, e.auth.Logout(context.Background(), ""))
}

func TestSessionForDeletedUserIsAnonymous(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "testuser")

	_, token, err := e.auth.Login(context.Background(), &service.LoginRequest{
		Username: "testuser",
		Password: "testuser-password",
	})
	require.NoError(t, err)

	require.NoError(t, e.userRepo.Delete(user.ID))

	_, ok, err := e.auth.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok, "a session whose user row was deleted is anonymous")

	// the stale token was dropped, not left behind
	_, ok, err = e.auth.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok)
}
