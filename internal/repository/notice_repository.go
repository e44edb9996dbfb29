package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const noticeColumns = `id, title, description, issued_by, image_url, image_public_id, published_at`

// NoticeRepository persists the notice board.
type NoticeRepository struct {
	db sqlx.ExtContext
}

// List returns the most recent notices first.
func (r *NoticeRepository) List(ctx context.Context, page, size int) ([]models.Notice, int, error) {
	limit, offset := paginate(page, size)
	query := fmt.Sprintf("SELECT %s FROM notices ORDER BY published_at DESC, id DESC LIMIT %d OFFSET %d", noticeColumns, limit, offset)
	var notices []models.Notice
	if err := sqlx.SelectContext(ctx, r.db, &notices, query); err != nil {
		return nil, 0, fmt.Errorf("list notices: %w", err)
	}
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM notices"); err != nil {
		return nil, 0, fmt.Errorf("count notices: %w", err)
	}
	return notices, total, nil
}

// FindByID fetches one notice.
func (r *NoticeRepository) FindByID(ctx context.Context, id int64) (*models.Notice, error) {
	var notice models.Notice
	if err := sqlx.GetContext(ctx, r.db, &notice, "SELECT "+noticeColumns+" FROM notices WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &notice, nil
}

// Create inserts a notice and sets its ID.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	notice.PublishedAt = time.Now().UTC()
	const query = `INSERT INTO notices (title, description, issued_by, image_url, image_public_id, published_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &notice.ID, query,
		notice.Title, notice.Description, notice.IssuedBy, notice.ImageURL, notice.ImagePublicID, notice.PublishedAt,
	); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// Delete removes a notice.
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return nil
}
