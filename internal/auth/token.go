package auth

import "github.com/google/uuid"

// GenerateToken returns a fresh opaque session token.
//
// Tokens are random UUIDs stored on the user row: issuing a new one on
// login replaces the previous value, which invalidates any earlier session.
// There is nothing to decode client-side; the server resolves the token
// with a database lookup on every request.
func GenerateToken() string {
	return uuid.NewString()
}
