package service

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/pkg/config"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/jobs"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

// ImageReleaseJob is the job type retrying failed object deletions.
const ImageReleaseJob = "image.release"

// Object storage folders.
const (
	FolderStudents  = "students"
	FolderTeachers  = "teachers"
	FolderCourses   = "courses"
	FolderClassWork = "classwork"
	FolderNotices   = "notices"
	FolderGallery   = "gallery"
)

type objectStore interface {
	Upload(ctx context.Context, folder string, data []byte, filename string) (*storage.Object, error)
	Delete(ctx context.Context, publicID string) error
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// ImageService validates uploads and releases stored objects.
type ImageService struct {
	store        objectStore
	maxSize      int64
	allowedMIMEs []string
	queue        jobQueue
	metrics      *MetricsService
	logger       *zap.Logger
}

// NewImageService constructs the image service.
func NewImageService(store objectStore, cfg config.MediaConfig, metrics *MetricsService, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		store:        store,
		maxSize:      cfg.MaxFileSizeBytes,
		allowedMIMEs: cfg.AllowedMIMEs,
		metrics:      metrics,
		logger:       logger,
	}
}

// UseQueue routes failed releases to q for retry.
func (s *ImageService) UseQueue(q jobQueue) {
	s.queue = q
}

// Upload checks the content and stores it under folder.
func (s *ImageService) Upload(ctx context.Context, folder string, data []byte) (*storage.Object, error) {
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, "file is empty")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	}
	mime := mimetype.Detect(data)
	if len(s.allowedMIMEs) > 0 && !mimetype.EqualsAny(mime.String(), s.allowedMIMEs...) {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, fmt.Sprintf("unsupported file type %s", mime.String()))
	}

	obj, err := s.store.Upload(ctx, folder, data, "upload"+mime.Extension())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternal.Code, appErrors.ErrExternal.Status, "failed to store file")
	}
	return obj, nil
}

// Replace uploads new content, lets swap persist it and release whatever it replaced.
// swap returns the public id of the replaced object. When swap fails the new object is released instead.
func (s *ImageService) Replace(ctx context.Context, folder string, data []byte, swap func(*storage.Object) (string, error)) (*storage.Object, error) {
	obj, err := s.Upload(ctx, folder, data)
	if err != nil {
		return nil, err
	}
	previous, err := swap(obj)
	if err != nil {
		s.Release(ctx, obj.PublicID)
		return nil, err
	}
	s.Release(ctx, previous)
	return obj, nil
}

// Release deletes an object. Failures are logged and queued for retry, never returned.
func (s *ImageService) Release(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	err := s.store.Delete(ctx, publicID)
	if err == nil {
		return
	}
	s.metrics.RecordImageReleaseFailure()
	s.logger.Warn("image release failed", zap.String("public_id", publicID), zap.Error(err))
	if s.queue == nil {
		return
	}
	if qerr := s.queue.Enqueue(jobs.Job{ID: publicID, Type: ImageReleaseJob, Payload: publicID}); qerr != nil {
		s.logger.Error("image release not queued", zap.String("public_id", publicID), zap.Error(qerr))
	}
}

// ReleaseAll releases every id in order.
func (s *ImageService) ReleaseAll(ctx context.Context, publicIDs []string) {
	for _, id := range publicIDs {
		s.Release(ctx, id)
	}
}

// HandleJob is the queue handler retrying a release.
func (s *ImageService) HandleJob(ctx context.Context, job jobs.Job) error {
	publicID, ok := job.Payload.(string)
	if !ok || publicID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("release %s: %w", publicID, err)
	}
	s.logger.Info("image released on retry", zap.String("public_id", publicID), zap.Int("attempt", job.Attempt))
	return nil
}
