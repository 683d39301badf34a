package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rahmatd/contactbook/internal/apperror"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user row and fills in the generated ID and
// timestamps. The UNIQUE constraint on username is the single authority on
// uniqueness; checking first and inserting second would leave a race
// window, so the constraint violation is mapped to the client-facing
// validation error here.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password, name, token, created_at, updated_at)
		 VALUES (?, ?, ?, NULLIF(?, ''), ?, ?)`,
		user.Username,
		user.Password,
		user.Name,
		user.Token,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Validation("username", "The username has already been taken.")
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `SELECT id, username, password, name, token, created_at, updated_at
		 FROM users WHERE username = ?`, username)
}

// GetUserByToken resolves a session token to its user. The lookup is
// read-only and exact; callers must reject empty tokens before calling
// (NULL tokens never match a bound parameter, but an empty string would).
func (db *DB) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	return db.getUser(ctx, `SELECT id, username, password, name, token, created_at, updated_at
		 FROM users WHERE token = ?`, token)
}

func (db *DB) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		u     model.User
		token sql.NullString
	)

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Name,
		&token,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	u.Token = token.String
	return &u, nil
}

// UpdateUser persists the mutable user fields in one statement. An empty
// Token is stored as NULL so a logged-out user can never be matched by a
// token lookup.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET password = ?, name = ?, token = NULLIF(?, ''), updated_at = ?
		 WHERE id = ?`,
		user.Password,
		user.Name,
		user.Token,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}
	if n == 0 {
		return apperror.NotFound("User not found")
	}

	return nil
}
