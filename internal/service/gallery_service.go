package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// GalleryService keeps the public picture gallery.
type GalleryService struct {
	uow       UnitOfWork
	files     fileStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(uow UnitOfWork, files fileStore, validate *validator.Validate, logger *zap.Logger) *GalleryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{uow: uow, files: files, validator: validate, logger: logger, now: time.Now}
}

// List returns pictures, most recently taken first.
func (s *GalleryService) List(ctx context.Context, page, size int) ([]models.GalleryItem, *models.Pagination, error) {
	items, total, err := s.uow.Repos().Gallery.List(ctx, page, size)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list gallery")
	}
	return items, paginationOf(page, size, total), nil
}

// Add uploads a picture and records it. Every gallery item has an image.
func (s *GalleryService) Add(ctx context.Context, req models.CreateGalleryItemRequest, image []byte) (*models.GalleryItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid gallery payload")
	}
	if len(image) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, "image is required")
	}
	item := &models.GalleryItem{About: req.About}
	if req.TakenOn != "" {
		takenOn, err := time.Parse(models.DateLayout, req.TakenOn)
		if err != nil {
			return nil, validationErr(err, "invalid taken_on")
		}
		item.TakenOn = takenOn
	} else {
		now := s.now().UTC()
		item.TakenOn = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	obj, err := s.files.Upload(ctx, FolderGallery, image)
	if err != nil {
		return nil, err
	}
	item.ImageURL, item.ImagePublicID = obj.URL, obj.PublicID

	err = s.uow.WithinTx(ctx, func(r Repos) error {
		return storageErr(r.Gallery.Create(ctx, item), "failed to add gallery item")
	})
	if err != nil {
		s.files.Release(ctx, item.ImagePublicID)
		return nil, storageErr(err, "failed to add gallery item")
	}

	s.logger.Info("gallery item added", zap.Int64("gallery_id", item.ID))
	return item, nil
}

// Delete removes a picture and then releases its image.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	var image string
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		item, err := r.Gallery.FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, "gallery item")
		}
		image = item.ImagePublicID
		return storageErr(r.Gallery.Delete(ctx, id), "failed to delete gallery item")
	})
	if err != nil {
		return storageErr(err, "failed to delete gallery item")
	}
	s.files.Release(ctx, image)
	return nil
}
