package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// AddressRepository persists postal addresses.
type AddressRepository struct {
	db sqlx.ExtContext
}

// Create inserts an address and sets its ID.
func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	const query = `INSERT INTO addresses (city, street) VALUES ($1, $2) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &address.ID, query, address.City, address.Street); err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

// FindByID fetches an address.
func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	var address models.Address
	if err := sqlx.GetContext(ctx, r.db, &address, `SELECT id, city, street FROM addresses WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &address, nil
}

// Update overwrites an address in place.
func (r *AddressRepository) Update(ctx context.Context, address *models.Address) error {
	const query = `UPDATE addresses SET city = $2, street = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, address.ID, address.City, address.Street); err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

// Delete removes an address.
func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
