package model

import "time"

// Address belongs to exactly one contact. It is only reachable through a
// contact owned by the authenticated user; authorization is transitive
// over two hops (user → contact → address). ContactID comes from the URL
// path and is immutable after creation.
type Address struct {
	ID         int64
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
	ContactID  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AddressPayload is the body of address create and update requests.
type AddressPayload struct {
	Street     *string `json:"street" validate:"omitempty,max=200"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=20"`
}

// AddressResponse is the public shape of an address.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// NewAddressResponse maps a domain address to its API shape.
func NewAddressResponse(a *Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
