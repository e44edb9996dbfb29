package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const enquiryColumns = `id, name, email, mobile, subject, message, status, created_at, updated_at`

// EnquiryRepository persists enquiries left on the public site.
type EnquiryRepository struct {
	db sqlx.ExtContext
}

// List returns enquiries, newest first, optionally narrowed to one status.
func (r *EnquiryRepository) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $1"
	}
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s FROM enquiries%s ORDER BY id DESC LIMIT %d OFFSET %d", enquiryColumns, where, limit, offset)
	var enquiries []models.Enquiry
	if err := sqlx.SelectContext(ctx, r.db, &enquiries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enquiries: %w", err)
	}
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM enquiries"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count enquiries: %w", err)
	}
	return enquiries, total, nil
}

// FindByID fetches one enquiry.
func (r *EnquiryRepository) FindByID(ctx context.Context, id int64) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := sqlx.GetContext(ctx, r.db, &enquiry, "SELECT "+enquiryColumns+" FROM enquiries WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// Create inserts an enquiry and sets its ID.
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	now := time.Now().UTC()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now
	const query = `INSERT INTO enquiries (name, email, mobile, subject, message, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &enquiry.ID, query,
		enquiry.Name, enquiry.Email, enquiry.Mobile, enquiry.Subject, enquiry.Message, enquiry.Status,
		enquiry.CreatedAt, enquiry.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

// UpdateStatus moves an enquiry to a new status.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	const query = `UPDATE enquiries SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enquiry status: %w", err)
	}
	return nil
}

// Delete removes an enquiry.
func (r *EnquiryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	return nil
}
