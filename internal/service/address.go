package service

import (
	"context"
	"log/slog"

	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository"
	"github.com/rahmatd/contactbook/internal/validate"
)

// AddressService handles address CRUD behind the two-hop ownership chain:
// every operation first resolves the contact under the authenticated user,
// then touches addresses scoped to that contact's id.
//
// The hop order fixes error attribution: a contact that isn't the user's
// reports "Contact not found", and only once that hop succeeds can an
// address miss report "Address not found".
type AddressService struct {
	contacts  repository.ContactRepository
	addresses repository.AddressRepository
	validate  *validate.Validator
	logger    *slog.Logger
}

func NewAddressService(
	contacts repository.ContactRepository,
	addresses repository.AddressRepository,
	validate *validate.Validator,
	logger *slog.Logger,
) *AddressService {
	return &AddressService{
		contacts:  contacts,
		addresses: addresses,
		validate:  validate,
		logger:    logger,
	}
}

// ownedContact is the first hop: contact id conjoined with the owner.
func (s *AddressService) ownedContact(ctx context.Context, user *model.User, contactID int64) (*model.Contact, error) {
	return s.contacts.GetContactByID(ctx, user.ID, contactID)
}

// Create stores a new address under one of the user's contacts. The owning
// contact id comes from the URL path, never from the payload.
func (s *AddressService) Create(ctx context.Context, user *model.User, contactID int64, req model.AddressPayload) (*model.Address, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.ownedContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		Street:     strValue(req.Street),
		City:       strValue(req.City),
		Province:   strValue(req.Province),
		Country:    req.Country,
		PostalCode: strValue(req.PostalCode),
		ContactID:  contact.ID,
	}

	if err := s.addresses.CreateAddress(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("address created",
		slog.Int64("contactID", contact.ID),
		slog.Int64("addressID", address.ID),
	)

	return address, nil
}

// Get resolves an address through both ownership hops.
func (s *AddressService) Get(ctx context.Context, user *model.User, contactID, addressID int64) (*model.Address, error) {
	contact, err := s.ownedContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	return s.addresses.GetAddressByID(ctx, contact.ID, addressID)
}

// List returns every address of one owned contact.
func (s *AddressService) List(ctx context.Context, user *model.User, contactID int64) ([]model.Address, error) {
	contact, err := s.ownedContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	return s.addresses.ListAddressesByContact(ctx, contact.ID)
}

// Update merges the payload over the existing address: country must be
// present, the optional fields only change when supplied.
func (s *AddressService) Update(ctx context.Context, user *model.User, contactID, addressID int64, req model.AddressPayload) (*model.Address, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.ownedContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	address, err := s.addresses.GetAddressByID(ctx, contact.ID, addressID)
	if err != nil {
		return nil, err
	}

	address.Country = req.Country
	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.Province != nil {
		address.Province = *req.Province
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
	}

	if err := s.addresses.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("address updated",
		slog.Int64("contactID", contact.ID),
		slog.Int64("addressID", address.ID),
	)

	return address, nil
}

// Delete removes an address through both ownership hops.
func (s *AddressService) Delete(ctx context.Context, user *model.User, contactID, addressID int64) error {
	contact, err := s.ownedContact(ctx, user, contactID)
	if err != nil {
		return err
	}

	if err := s.addresses.DeleteAddress(ctx, contact.ID, addressID); err != nil {
		return err
	}

	s.logger.Info("address deleted",
		slog.Int64("contactID", contact.ID),
		slog.Int64("addressID", addressID),
	)

	return nil
}
