// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Password always holds the bcrypt hash, never the plaintext. Token is the
// opaque session token: empty when the user is logged out, regenerated on
// every login so at most one session is valid at a time.
//
// The domain structs carry no json tags on purpose: the API never encodes
// them directly. Handlers build the *Response types below, which is what
// keeps the password hash and session token out of regular responses.
type User struct {
	ID        int64
	Username  string
	Password  string
	Name      string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterUserRequest is the payload for POST /api/users.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserRequest is the payload for POST /api/users/login.
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest is the payload for PATCH /api/users/current.
// Both fields are optional, but at least one must carry a non-empty value;
// the service enforces that rule.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,max=100"`
}

// UserResponse is the public shape of a user. Token is only populated in
// the login response.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}
