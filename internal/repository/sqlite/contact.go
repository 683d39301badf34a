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

// compile-time check that *DB implements repository.ContactRepository
var _ repository.ContactRepository = (*DB)(nil)

const contactColumns = `id, first_name, last_name, email, phone, user_id, created_at, updated_at`

// CreateContact inserts a contact under the owner already set on the model.
func (db *DB) CreateContact(ctx context.Context, contact *model.Contact) error {
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.UserID,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting contact (userID=%d): %w", contact.UserID, err)
	}

	contact.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new contact id: %w", err)
	}

	return nil
}

// GetContactByID resolves a contact with the id and ownership predicates
// conjoined in one statement. A contact that exists under a different owner
// and a contact that does not exist at all are indistinguishable to the
// caller: both are "Contact not found".
func (db *DB) GetContactByID(ctx context.Context, userID, contactID int64) (*model.Contact, error) {
	var c model.Contact

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ? AND user_id = ?`,
		contactID, userID,
	).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Contact not found")
		}
		return nil, fmt.Errorf("sqlite: getting contact %d: %w", contactID, err)
	}

	return &c, nil
}

// UpdateContact writes the contact fields back, keeping the ownership
// predicate in the UPDATE itself so there is no window between an
// ownership check and the mutation.
func (db *DB) UpdateContact(ctx context.Context, contact *model.Contact) error {
	contact.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE contacts SET first_name = ?, last_name = ?, email = ?, phone = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.UpdatedAt,
		contact.ID,
		contact.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating contact %d: %w", contact.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating contact %d: %w", contact.ID, err)
	}
	if n == 0 {
		return apperror.NotFound("Contact not found")
	}

	return nil
}

// DeleteContact removes the row matching both id and owner. The foreign key
// cascade removes the contact's addresses in the same statement.
func (db *DB) DeleteContact(ctx context.Context, userID, contactID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = ? AND user_id = ?`,
		contactID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting contact %d: %w", contactID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting contact %d: %w", contactID, err)
	}
	if n == 0 {
		return apperror.NotFound("Contact not found")
	}

	return nil
}

// SearchContacts runs the filtered, paginated query over one user's
// contacts. The owner predicate is always first in the WHERE clause;
// filters are ANDed onto it, and the name filter expands to an OR over
// first and last name. SQLite's LIKE is case-insensitive for ASCII, which
// gives the case-insensitive substring semantics directly.
//
// The total count is computed with the same predicates before applying the
// pagination window, so callers can derive the page count.
func (db *DB) SearchContacts(ctx context.Context, userID int64, filter repository.ContactFilter) ([]model.Contact, int, error) {
	where := `user_id = ?`
	args := []any{userID}

	if filter.Name != "" {
		where += ` AND (first_name LIKE ? OR last_name LIKE ?)`
		pattern := "%" + filter.Name + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Email != "" {
		where += ` AND email LIKE ?`
		args = append(args, "%"+filter.Email+"%")
	}
	if filter.Phone != "" {
		where += ` AND phone LIKE ?`
		args = append(args, "%"+filter.Phone+"%")
	}

	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting contacts: %w", err)
	}

	// ORDER BY id keeps pages stable for a fixed filter set.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE `+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Offset())...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: searching contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating contact rows: %w", err)
	}

	return contacts, total, nil
}
