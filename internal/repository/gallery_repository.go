package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const galleryColumns = `id, image_url, image_public_id, about, taken_on`

// GalleryRepository persists the public picture gallery.
type GalleryRepository struct {
	db sqlx.ExtContext
}

// List returns gallery items, latest pictures first.
func (r *GalleryRepository) List(ctx context.Context, page, size int) ([]models.GalleryItem, int, error) {
	limit, offset := paginate(page, size)
	query := fmt.Sprintf("SELECT %s FROM gallery ORDER BY taken_on DESC, id DESC LIMIT %d OFFSET %d", galleryColumns, limit, offset)
	var items []models.GalleryItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, 0, fmt.Errorf("list gallery: %w", err)
	}
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM gallery"); err != nil {
		return nil, 0, fmt.Errorf("count gallery: %w", err)
	}
	return items, total, nil
}

// FindByID fetches one gallery item.
func (r *GalleryRepository) FindByID(ctx context.Context, id int64) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := sqlx.GetContext(ctx, r.db, &item, "SELECT "+galleryColumns+" FROM gallery WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a gallery item and sets its ID.
func (r *GalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	const query = `INSERT INTO gallery (image_url, image_public_id, about, taken_on) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &item.ID, query, item.ImageURL, item.ImagePublicID, item.About, item.TakenOn); err != nil {
		return fmt.Errorf("create gallery item: %w", err)
	}
	return nil
}

// Delete removes a gallery item.
func (r *GalleryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return nil
}
