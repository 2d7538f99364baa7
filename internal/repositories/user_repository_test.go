package repositories_test

import (
	"testing"

	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFindByEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	helpers.CreateUser(t, db, "anna1", "a@x.com", "password1")

	user, err := repo.FindByEmail(db, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "anna1", user.Username)

	missing, err := repo.FindByEmail(db, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	err := repo.Create(db, &models.User{Username: "user1", Email: "dup@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	err = repo.Create(db, &models.User{Username: "user2", Email: "dup@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)
}

func TestUserUpdateRefreshToken(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	user := helpers.CreateUser(t, db, "anna1", "a@x.com", "password1")

	token := "refresh-token-value"
	require.NoError(t, repo.UpdateRefreshToken(db, user, &token))

	stored, err := repo.FindByEmail(db, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, token, *stored.RefreshToken)

	// nil clears the stored token
	require.NoError(t, repo.UpdateRefreshToken(db, user, nil))

	cleared, err := repo.FindByEmail(db, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, cleared.RefreshToken)
}

func TestUserConfirmEmail_Idempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Create(db, &models.User{Username: "fresh", Email: "fresh@x.com", PasswordHash: "hash"}))

	require.NoError(t, repo.ConfirmEmail(db, "fresh@x.com"))
	user, err := repo.FindByEmail(db, "fresh@x.com")
	require.NoError(t, err)
	assert.True(t, user.Confirmed)

	// Second confirmation is a no-op
	require.NoError(t, repo.ConfirmEmail(db, "fresh@x.com"))
	user, err = repo.FindByEmail(db, "fresh@x.com")
	require.NoError(t, err)
	assert.True(t, user.Confirmed)
}

func TestUserUpdateAvatar(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	helpers.CreateUser(t, db, "anna1", "a@x.com", "password1")

	user, err := repo.UpdateAvatar(db, "a@x.com", "https://cdn.test/avatar.png")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "https://cdn.test/avatar.png", user.Avatar)

	missing, err := repo.UpdateAvatar(db, "nobody@x.com", "url")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
