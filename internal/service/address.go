package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// saveAddress writes req over the address at current, or creates one when there is none.
// It returns the stored address; a nil req leaves everything untouched.
func saveAddress(ctx context.Context, r Repos, current *int64, req *models.AddressRequest) (*models.Address, error) {
	if req == nil {
		return nil, nil
	}
	address := &models.Address{City: req.City, Street: req.Street}
	if current != nil {
		address.ID = *current
		if err := r.Addresses.Update(ctx, address); err != nil {
			return nil, storageErr(err, "failed to update address")
		}
		return address, nil
	}
	if err := r.Addresses.Create(ctx, address); err != nil {
		return nil, storageErr(err, "failed to create address")
	}
	return address, nil
}

func loadAddress(ctx context.Context, r Repos, id *int64) (*models.Address, error) {
	if id == nil {
		return nil, nil
	}
	address, err := r.Addresses.FindByID(ctx, *id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storageErr(err, "failed to load address")
	}
	return address, nil
}
