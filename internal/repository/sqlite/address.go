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

// compile-time check that *DB implements repository.AddressRepository
var _ repository.AddressRepository = (*DB)(nil)

const addressColumns = `id, street, city, province, country, postal_code, contact_id, created_at, updated_at`

// CreateAddress inserts an address under the contact already set on the
// model. The caller is responsible for having resolved that contact under
// the authenticated owner first.
func (db *DB) CreateAddress(ctx context.Context, address *model.Address) error {
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO addresses (street, city, province, country, postal_code, contact_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		address.Street,
		address.City,
		address.Province,
		address.Country,
		address.PostalCode,
		address.ContactID,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting address (contactID=%d): %w", address.ContactID, err)
	}

	address.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new address id: %w", err)
	}

	return nil
}

// GetAddressByID resolves an address conjoined with its contact scope.
func (db *DB) GetAddressByID(ctx context.Context, contactID, addressID int64) (*model.Address, error) {
	var a model.Address

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = ? AND contact_id = ?`,
		addressID, contactID,
	).Scan(
		&a.ID,
		&a.Street,
		&a.City,
		&a.Province,
		&a.Country,
		&a.PostalCode,
		&a.ContactID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Address not found")
		}
		return nil, fmt.Errorf("sqlite: getting address %d: %w", addressID, err)
	}

	return &a, nil
}

// ListAddressesByContact returns every address under one contact, in
// insertion order.
func (db *DB) ListAddressesByContact(ctx context.Context, contactID int64) ([]model.Address, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE contact_id = ? ORDER BY id`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing addresses (contactID=%d): %w", contactID, err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(
			&a.ID,
			&a.Street,
			&a.City,
			&a.Province,
			&a.Country,
			&a.PostalCode,
			&a.ContactID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating address rows: %w", err)
	}

	return addresses, nil
}

// UpdateAddress writes the address fields back, keeping the contact scope
// in the UPDATE predicate itself.
func (db *DB) UpdateAddress(ctx context.Context, address *model.Address) error {
	address.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE addresses SET street = ?, city = ?, province = ?, country = ?, postal_code = ?, updated_at = ?
		 WHERE id = ? AND contact_id = ?`,
		address.Street,
		address.City,
		address.Province,
		address.Country,
		address.PostalCode,
		address.UpdatedAt,
		address.ID,
		address.ContactID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating address %d: %w", address.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating address %d: %w", address.ID, err)
	}
	if n == 0 {
		return apperror.NotFound("Address not found")
	}

	return nil
}

// DeleteAddress removes the row matching both id and contact scope.
func (db *DB) DeleteAddress(ctx context.Context, contactID, addressID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = ? AND contact_id = ?`,
		addressID, contactID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting address %d: %w", addressID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting address %d: %w", addressID, err)
	}
	if n == 0 {
		return apperror.NotFound("Address not found")
	}

	return nil
}
