package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

// CourseService manages course details and rosters.
type CourseService struct {
	uow       UnitOfWork
	images    imageReplacer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(uow UnitOfWork, images imageReplacer, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{uow: uow, images: images, validator: validate, logger: logger}
}

// List returns courses with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	courses, total, err := s.uow.Repos().Courses.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list courses")
	}
	return courses, paginationOf(filter.Page, filter.PageSize, total), nil
}

// Get returns a course with its classroom and enrollment count.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.uow.Repos().Courses.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "course")
	}
	return course, nil
}

// Create stores the course and its classroom in one transaction.
func (s *CourseService) Create(ctx context.Context, req models.CreateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid course payload")
	}
	if _, err := parseFees(req.Fees); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:      req.Name,
		Session:   req.Session,
		Duration:  req.Duration,
		About:     req.About,
		Fees:      req.Fees,
		ClassTime: req.ClassTime,
	}
	room := &models.Classroom{}
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		if err := r.Courses.Create(ctx, course); err != nil {
			return storageErr(err, "failed to create course")
		}
		room.CourseID = course.ID
		return storageErr(r.Classrooms.Create(ctx, room), "failed to create classroom")
	})
	if err != nil {
		return nil, storageErr(err, "failed to create course")
	}

	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.Int64("classroom_id", room.ID))
	return &models.CourseDetail{Course: *course, ClassroomID: &room.ID}, nil
}

// Update changes the supplied course details. The teacher link is managed by assignment only.
func (s *CourseService) Update(ctx context.Context, id int64, req models.UpdateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid course payload")
	}
	if req.Fees != nil {
		if _, err := parseFees(*req.Fees); err != nil {
			return nil, err
		}
	}

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		course, err := r.Courses.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "course")
		}
		applyCourseUpdate(course, req)
		return storageErr(r.Courses.Update(ctx, course), "failed to update course")
	})
	if err != nil {
		return nil, storageErr(err, "failed to update course")
	}
	return s.Get(ctx, id)
}

func applyCourseUpdate(course *models.Course, req models.UpdateCourseRequest) {
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Session != nil {
		course.Session = *req.Session
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.About != nil {
		course.About = *req.About
	}
	if req.Fees != nil {
		course.Fees = *req.Fees
	}
	if req.ClassTime != nil {
		course.ClassTime = *req.ClassTime
	}
}

// ListStudents returns the course roster ordered by roll number.
func (s *CourseService) ListStudents(ctx context.Context, id int64) ([]models.CourseStudent, error) {
	repos := s.uow.Repos()
	if _, err := repos.Courses.FindByID(ctx, id); err != nil {
		return nil, lookupErr(err, "course")
	}
	students, err := repos.Courses.ListStudents(ctx, id)
	if err != nil {
		return nil, storageErr(err, "failed to list course students")
	}
	return students, nil
}

// UpdateImage replaces the course image.
func (s *CourseService) UpdateImage(ctx context.Context, id int64, data []byte) (*models.CourseDetail, error) {
	if _, err := s.uow.Repos().Courses.FindByID(ctx, id); err != nil {
		return nil, lookupErr(err, "course")
	}
	_, err := s.images.Replace(ctx, FolderCourses, data, func(obj *storage.Object) (string, error) {
		var previous string
		err := s.uow.WithinTx(ctx, func(r Repos) error {
			course, err := r.Courses.FindByIDForUpdate(ctx, id)
			if err != nil {
				return lookupErr(err, "course")
			}
			previous = course.ImagePublicID
			return storageErr(r.Courses.UpdateImage(ctx, id, obj.URL, obj.PublicID), "failed to update course image")
		})
		return previous, storageErr(err, "failed to update course image")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
