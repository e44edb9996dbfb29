package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// NoticeService runs the school notice board.
type NoticeService struct {
	uow       UnitOfWork
	files     fileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs the notice service.
func NewNoticeService(uow UnitOfWork, files fileStore, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{uow: uow, files: files, validator: validate, logger: logger}
}

// List returns notices, newest first.
func (s *NoticeService) List(ctx context.Context, page, size int) ([]models.Notice, *models.Pagination, error) {
	notices, total, err := s.uow.Repos().Notices.List(ctx, page, size)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list notices")
	}
	return notices, paginationOf(page, size, total), nil
}

// Publish stores a notice with its optional image. The image is released again if the notice cannot be saved.
func (s *NoticeService) Publish(ctx context.Context, req models.CreateNoticeRequest, image []byte) (*models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid notice payload")
	}
	notice := &models.Notice{Title: req.Title, Description: req.Description, IssuedBy: req.IssuedBy}
	if len(image) > 0 {
		obj, err := s.files.Upload(ctx, FolderNotices, image)
		if err != nil {
			return nil, err
		}
		notice.ImageURL, notice.ImagePublicID = obj.URL, obj.PublicID
	}

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		return storageErr(r.Notices.Create(ctx, notice), "failed to publish notice")
	})
	if err != nil {
		s.files.Release(ctx, notice.ImagePublicID)
		return nil, storageErr(err, "failed to publish notice")
	}

	s.logger.Info("notice published", zap.Int64("notice_id", notice.ID), zap.String("issued_by", notice.IssuedBy))
	return notice, nil
}

// Delete removes a notice and then releases its image.
func (s *NoticeService) Delete(ctx context.Context, id int64) error {
	var image string
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		notice, err := r.Notices.FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, "notice")
		}
		image = notice.ImagePublicID
		return storageErr(r.Notices.Delete(ctx, id), "failed to delete notice")
	})
	if err != nil {
		return storageErr(err, "failed to delete notice")
	}
	s.files.Release(ctx, image)
	s.logger.Info("notice deleted", zap.Int64("notice_id", id))
	return nil
}
