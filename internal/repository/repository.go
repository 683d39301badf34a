// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the only implementation.
package repository

import (
	"context"

	"github.com/rahmatd/contactbook/internal/model"
)

// Pagination defaults for contact search.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ContactFilter carries the optional search filters and pagination window
// for SearchContacts. The owner predicate is not part of the filter; it is
// a separate, mandatory argument so it can never be omitted.
type ContactFilter struct {
	Name  string // case-insensitive substring over firstName OR lastName
	Email string // substring
	Phone string // substring
	Page  int
	Limit int
}

// Normalized returns a copy with the pagination window coerced to sane
// values: page and limit default when missing or non-positive.
func (f ContactFilter) Normalized() ContactFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	return f
}

// Offset converts the page/limit window into a row offset.
func (f ContactFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type UserRepository interface {
	// CreateUser inserts a new user and fills in ID and timestamps.
	// A duplicate username surfaces as a field-keyed validation error.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
	// UpdateUser persists name, password hash, and session token changes.
	UpdateUser(ctx context.Context, user *model.User) error
}

// ContactRepository scopes every single-resource operation by owner in the
// same statement as the id predicate. There is deliberately no lookup by id
// alone.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *model.Contact) error
	GetContactByID(ctx context.Context, userID, contactID int64) (*model.Contact, error)
	UpdateContact(ctx context.Context, contact *model.Contact) error
	DeleteContact(ctx context.Context, userID, contactID int64) error
	// SearchContacts returns one page of the user's contacts matching the
	// filter, plus the total match count before pagination.
	SearchContacts(ctx context.Context, userID int64, filter ContactFilter) ([]model.Contact, int, error)
}

// AddressRepository scopes every operation by the owning contact id. The
// caller must already have resolved that contact under the authenticated
// user. This is the second hop of the ownership chain.
type AddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, contactID, addressID int64) (*model.Address, error)
	ListAddressesByContact(ctx context.Context, contactID int64) ([]model.Address, error)
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, contactID, addressID int64) error
}
