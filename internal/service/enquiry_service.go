package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// EnquiryService collects enquiries from the public site and tracks their handling.
type EnquiryService struct {
	uow       UnitOfWork
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnquiryService constructs the enquiry service.
func NewEnquiryService(uow UnitOfWork, validate *validator.Validate, logger *zap.Logger) *EnquiryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{uow: uow, validator: validate, logger: logger}
}

// Submit records a new enquiry.
func (s *EnquiryService) Submit(ctx context.Context, req models.CreateEnquiryRequest) (*models.Enquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid enquiry payload")
	}
	enquiry := &models.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.EnquiryStatusNew,
	}
	if err := s.uow.Repos().Enquiries.Create(ctx, enquiry); err != nil {
		return nil, storageErr(err, "failed to submit enquiry")
	}
	s.logger.Info("enquiry received", zap.Int64("enquiry_id", enquiry.ID))
	return enquiry, nil
}

// List returns enquiries, newest first.
func (s *EnquiryService) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, *models.Pagination, error) {
	switch filter.Status {
	case "", models.EnquiryStatusNew, models.EnquiryStatusResponded:
	default:
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown enquiry status")
	}
	enquiries, total, err := s.uow.Repos().Enquiries.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list enquiries")
	}
	return enquiries, paginationOf(filter.Page, filter.PageSize, total), nil
}

// MarkResponded closes an enquiry. Marking it twice is harmless.
func (s *EnquiryService) MarkResponded(ctx context.Context, id int64) (*models.Enquiry, error) {
	var enquiry *models.Enquiry
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		var err error
		enquiry, err = r.Enquiries.FindByID(ctx, id)
		if err != nil {
			return lookupErr(err, "enquiry")
		}
		if enquiry.Status == models.EnquiryStatusResponded {
			return nil
		}
		enquiry.Status = models.EnquiryStatusResponded
		return storageErr(r.Enquiries.UpdateStatus(ctx, id, enquiry.Status), "failed to update enquiry")
	})
	if err != nil {
		return nil, storageErr(err, "failed to update enquiry")
	}
	return enquiry, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(ctx context.Context, id int64) error {
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		if _, err := r.Enquiries.FindByID(ctx, id); err != nil {
			return lookupErr(err, "enquiry")
		}
		return storageErr(r.Enquiries.Delete(ctx, id), "failed to delete enquiry")
	})
	return storageErr(err, "failed to delete enquiry")
}
