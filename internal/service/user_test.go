package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatd/contactbook/internal/apperror"
	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository/sqlite"
	"github.com/rahmatd/contactbook/internal/validate"
)

// testDeps bundles the real collaborators the services are built on. The
// services are exercised against an in-memory database rather than mocks so
// the ownership predicates in the SQL are part of what the tests verify.
type testDeps struct {
	db        *sqlite.DB
	passwords *auth.PasswordService
	validate  *validate.Validator
	logger    *slog.Logger
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err, "failed to create test db")
	t.Cleanup(func() { db.Close() })

	return testDeps{
		db:        db,
		passwords: auth.NewPasswordService(4), // bcrypt minimum, to keep tests fast
		validate:  validate.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newTestUserService(t *testing.T) (*UserService, testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	return NewUserService(deps.db, deps.passwords, deps.validate, deps.logger), deps
}

func registerTestUser(t *testing.T, svc *UserService, username string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), model.RegisterUserRequest{
		Username: username,
		Password: "secret123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), model.RegisterUserRequest{
		Username: "johndoe",
		Password: "secret123",
		Name:     "John Doe",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "johndoe", user.Username)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.Empty(t, user.Token, "registration does not start a session")
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), model.RegisterUserRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	bag := appErr.Bag()
	assert.Equal(t, []string{"The username field is required."}, bag["username"])
	assert.Equal(t, []string{"The password field is required."}, bag["password"])
	assert.Equal(t, []string{"The name field is required."}, bag["name"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService(t)
	registerTestUser(t, svc, "johndoe")

	_, err := svc.Register(context.Background(), model.RegisterUserRequest{
		Username: "johndoe",
		Password: "other456",
		Name:     "Someone Else",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string][]string{
		"username": {"The username has already been taken."},
	}, appErr.Bag())
}

func TestLogin(t *testing.T) {
	svc, deps := newTestUserService(t)
	registerTestUser(t, svc, "johndoe")

	user, err := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.Token)

	// The token is live: it resolves back to the same user.
	found, err := deps.db.GetUserByToken(context.Background(), user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestLogin_ReplacesPreviousSession(t *testing.T) {
	svc, deps := newTestUserService(t)
	registerTestUser(t, svc, "johndoe")

	first, err := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "secret123",
	})
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = deps.db.GetUserByToken(context.Background(), first.Token)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "old session must be dead")
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestUserService(t)
	registerTestUser(t, svc, "johndoe")

	// Unknown username and wrong password must produce the exact same error,
	// otherwise the endpoint leaks which usernames exist.
	_, unknownUserErr := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "nobody", Password: "secret123",
	})
	_, wrongPasswordErr := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "wrongpass",
	})

	require.Error(t, unknownUserErr)
	require.Error(t, wrongPasswordErr)
	assert.True(t, errors.Is(unknownUserErr, apperror.ErrUnauthorized))
	assert.True(t, errors.Is(wrongPasswordErr, apperror.ErrUnauthorized))

	var a, b *apperror.AppError
	require.True(t, errors.As(unknownUserErr, &a))
	require.True(t, errors.As(wrongPasswordErr, &b))
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, "Incorrect password or username", a.Message)
}

func TestUpdateCurrent_NameOnly(t *testing.T) {
	svc, _ := newTestUserService(t)
	user := registerTestUser(t, svc, "johndoe")
	oldHash := user.Password

	name := "New Name"
	updated, err := svc.UpdateCurrent(context.Background(), user, model.UpdateUserRequest{
		Name: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, oldHash, updated.Password, "password must not change on a name-only update")
}

func TestUpdateCurrent_PasswordOnly(t *testing.T) {
	svc, _ := newTestUserService(t)
	user := registerTestUser(t, svc, "johndoe")
	oldHash := user.Password

	password := "newsecret456"
	updated, err := svc.UpdateCurrent(context.Background(), user, model.UpdateUserRequest{
		Password: &password,
	})
	require.NoError(t, err)

	assert.Equal(t, "Test User", updated.Name, "name must not change on a password-only update")
	assert.NotEqual(t, oldHash, updated.Password)

	// The new password works for login, the old one does not.
	_, err = svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "newsecret456",
	})
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "secret123",
	})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestUpdateCurrent_NothingToUpdate(t *testing.T) {
	svc, _ := newTestUserService(t)
	user := registerTestUser(t, svc, "johndoe")

	empty := ""
	cases := []struct {
		name string
		req  model.UpdateUserRequest
	}{
		{"both absent", model.UpdateUserRequest{}},
		{"empty strings count as absent", model.UpdateUserRequest{Name: &empty, Password: &empty}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateCurrent(context.Background(), user, tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, map[string][]string{
				"message": {"Name or password is required"},
			}, appErr.Bag())
		})
	}
}

func TestLogout(t *testing.T) {
	svc, deps := newTestUserService(t)
	registerTestUser(t, svc, "johndoe")

	user, err := svc.Login(context.Background(), model.LoginUserRequest{
		Username: "johndoe", Password: "secret123",
	})
	require.NoError(t, err)
	token := user.Token

	require.NoError(t, svc.Logout(context.Background(), user))

	_, err = deps.db.GetUserByToken(context.Background(), token)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "token must stop resolving after logout")
}
