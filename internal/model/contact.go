package model

import "time"

// Contact is a single entry in a user's contact book.
//
// UserID is the owning user and is immutable after creation. It is always
// derived from the authenticated request, never from a request body, so a
// caller can't create or move a contact under somebody else's account.
//
// Optional fields (LastName, Email, Phone) use the empty string as their
// zero value rather than nullable pointers.
type Contact struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactPayload is the body of contact create and update requests.
//
// Optional fields are pointers so an update can tell "field absent, leave
// it alone" apart from "field present and empty".
type ContactPayload struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// ContactResponse is the public shape of a contact.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// NewContactResponse maps a domain contact to its API shape.
func NewContactResponse(c *Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
