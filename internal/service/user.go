// Package service contains the business logic layer: it validates input,
// enforces the ownership and session rules, and orchestrates repositories.
// Handlers stay HTTP-only, repositories stay SQL-only.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rahmatd/contactbook/internal/apperror"
	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository"
	"github.com/rahmatd/contactbook/internal/validate"
)

// UserService handles registration, login, and self-service profile updates.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	validate  *validate.Validator
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	validate *validate.Validator,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		validate:  validate,
		logger:    logger,
	}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash; the plaintext is never persisted or logged. Username uniqueness is
// enforced by the repository's insert (backed by the UNIQUE constraint), so
// two concurrent registrations of the same username can't both succeed.
func (s *UserService) Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Password: hash,
		Name:     req.Name,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies the credentials and issues a fresh session token,
// replacing any previous one. A user has at most one live session.
//
// An unknown username and a wrong password collapse into the same error so
// the response can't be used to enumerate usernames.
func (s *UserService) Login(ctx context.Context, req model.LoginUserRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Incorrect password or username")
		}
		return nil, err
	}

	if err := s.passwords.Verify(user.Password, req.Password); err != nil {
		return nil, apperror.Unauthorized("Incorrect password or username")
	}

	user.Token = auth.GenerateToken()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return user, nil
}

// UpdateCurrent applies a partial self-update: only the fields present in
// the payload change. At least one of name/password must carry a non-empty
// value; an empty string counts as absent.
func (s *UserService) UpdateCurrent(ctx context.Context, user *model.User, req model.UpdateUserRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	name := strValue(req.Name)
	password := strValue(req.Password)
	if name == "" && password == "" {
		return nil, apperror.Validation("", "Name or password is required")
	}

	if name != "" {
		user.Name = name
	}
	if password != "" {
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("updating user %d: %w", user.ID, err)
		}
		user.Password = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", slog.Int64("userID", user.ID))

	return user, nil
}

// Logout clears the session token, invalidating the caller's credential.
func (s *UserService) Logout(ctx context.Context, user *model.User) error {
	user.Token = ""
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user logged out", slog.Int64("userID", user.ID))
	return nil
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
