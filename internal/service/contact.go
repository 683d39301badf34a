package service

import (
	"context"
	"log/slog"

	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository"
	"github.com/rahmatd/contactbook/internal/validate"
)

// ContactService handles contact CRUD and search, always on behalf of an
// authenticated user. Every repository call carries the owner id, so no
// operation can reach another user's rows.
type ContactService struct {
	contacts repository.ContactRepository
	validate *validate.Validator
	logger   *slog.Logger
}

func NewContactService(
	contacts repository.ContactRepository,
	validate *validate.Validator,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		contacts: contacts,
		validate: validate,
		logger:   logger,
	}
}

// Create stores a new contact for user. The owner comes from the
// authenticated identity, never from the payload.
func (s *ContactService) Create(ctx context.Context, user *model.User, req model.ContactPayload) (*model.Contact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		FirstName: req.FirstName,
		LastName:  strValue(req.LastName),
		Email:     strValue(req.Email),
		Phone:     strValue(req.Phone),
		UserID:    user.ID,
	}

	if err := s.contacts.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("contact created",
		slog.Int64("userID", user.ID),
		slog.Int64("contactID", contact.ID),
	)

	return contact, nil
}

// Get resolves one of the user's contacts.
func (s *ContactService) Get(ctx context.Context, user *model.User, contactID int64) (*model.Contact, error) {
	return s.contacts.GetContactByID(ctx, user.ID, contactID)
}

// Update merges the payload over the existing contact: firstName must be
// present, the optional fields only change when supplied. The repository
// keeps the ownership predicate on the UPDATE itself.
func (s *ContactService) Update(ctx context.Context, user *model.User, contactID int64, req model.ContactPayload) (*model.Contact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.contacts.GetContactByID(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = req.FirstName
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}

	if err := s.contacts.UpdateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("contact updated",
		slog.Int64("userID", user.ID),
		slog.Int64("contactID", contact.ID),
	)

	return contact, nil
}

// Delete removes one of the user's contacts; the schema cascade removes its
// addresses in the same statement.
func (s *ContactService) Delete(ctx context.Context, user *model.User, contactID int64) error {
	if err := s.contacts.DeleteContact(ctx, user.ID, contactID); err != nil {
		return err
	}

	s.logger.Info("contact deleted",
		slog.Int64("userID", user.ID),
		slog.Int64("contactID", contactID),
	)

	return nil
}

// Search returns one page of the user's contacts matching the filter and
// the pre-pagination total. Zero matches is a normal result, not an error.
// Missing or non-positive page/limit values fall back to the defaults.
func (s *ContactService) Search(ctx context.Context, user *model.User, filter repository.ContactFilter) ([]model.Contact, int, error) {
	return s.contacts.SearchContacts(ctx, user.ID, filter.Normalized())
}
