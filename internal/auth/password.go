// Package auth provides password hashing, opaque session token issuance,
// and the token-authentication middleware.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used in production. Tests inject a
// lower cost so hashing takes milliseconds instead of ~250ms per call.
const DefaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be injected: the
// server uses DefaultCost, tests use the bcrypt minimum.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService. A cost of 0 selects
// DefaultCost.
func NewPasswordService(cost int) *PasswordService {
	if cost == 0 {
		cost = DefaultCost
	}
	return &PasswordService{cost: cost}
}

// maxPasswordBytes is the bcrypt key-material limit. Longer inputs are
// truncated before hashing and verification, so only the first 72 bytes of
// a password are significant.
const maxPasswordBytes = 72

// Hash hashes the given plaintext password with bcrypt. The output embeds
// the salt and cost, so it can be stored directly and verified later with
// Verify. Input beyond 72 bytes is truncated; the validation layer caps
// passwords at 100 characters, so the full range it accepts hashes cleanly.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on match. The comparison is constant-time internally.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
