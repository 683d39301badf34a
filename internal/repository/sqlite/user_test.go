package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatd/contactbook/internal/apperror"
	"github.com/rahmatd/contactbook/internal/model"
)

// newTestDB opens an in-memory database that lives for one test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test db")
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username, token string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "$2a$04$fakehashforrepositorytests",
		Name:     username,
		Token:    token,
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "johndoe", Password: "hash", Name: "John Doe"}
	err := db.CreateUser(context.Background(), user)
	require.NoError(t, err)

	assert.NotZero(t, user.ID, "CreateUser should set the generated ID")
	assert.False(t, user.CreatedAt.IsZero(), "CreateUser should set CreatedAt")
	assert.False(t, user.UpdatedAt.IsZero(), "CreateUser should set UpdatedAt")
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "johndoe", "")

	err := db.CreateUser(context.Background(), &model.User{
		Username: "johndoe", Password: "hash", Name: "Someone Else",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation), "duplicate username should be a validation error")

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string][]string{
		"username": {"The username has already been taken."},
	}, appErr.Bag())
}

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "johndoe", "")

	found, err := db.GetUserByUsername(context.Background(), "johndoe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "johndoe", found.Username)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByUsername(context.Background(), "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGetUserByToken(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "johndoe", "session-token-1")

	found, err := db.GetUserByToken(context.Background(), "session-token-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "session-token-1", found.Token)
}

func TestGetUserByToken_UnknownToken(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "johndoe", "session-token-1")

	_, err := db.GetUserByToken(context.Background(), "wrong-token")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdateUser_ReplacesToken(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "johndoe", "old-token")

	user.Token = "new-token"
	require.NoError(t, db.UpdateUser(context.Background(), user))

	// The old token no longer resolves: one active session per user.
	_, err := db.GetUserByToken(context.Background(), "old-token")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	found, err := db.GetUserByToken(context.Background(), "new-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUpdateUser_ClearedTokenStoredAsNull(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "johndoe", "session-token-1")
	other := createTestUser(t, db, "janedoe", "")

	user.Token = ""
	require.NoError(t, db.UpdateUser(context.Background(), user))

	other.Token = ""
	require.NoError(t, db.UpdateUser(context.Background(), other))

	_, err := db.GetUserByToken(context.Background(), "")
	assert.True(t, errors.Is(err, apperror.ErrNotFound),
		"empty token must never resolve to a user")
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateUser(context.Background(), &model.User{ID: 999, Username: "ghost"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
