package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

type fileStore interface {
	Upload(ctx context.Context, folder string, data []byte) (*storage.Object, error)
	Release(ctx context.Context, publicID string)
}

// ClassroomService posts classwork and collects submissions.
type ClassroomService struct {
	uow       UnitOfWork
	files     fileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs the classroom service.
func NewClassroomService(uow UnitOfWork, files fileStore, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{uow: uow, files: files, validator: validate, logger: logger}
}

// PostClassWork adds classwork to the course classroom. The optional reference file is stored first
// and released again if the classwork cannot be saved.
func (s *ClassroomService) PostClassWork(ctx context.Context, courseID int64, req models.PostClassWorkRequest, reference []byte) (*models.ClassWork, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid classwork payload")
	}
	work := &models.ClassWork{Title: req.Title, Description: req.Description, TotalMarks: req.TotalMarks}
	if req.LastDate != "" {
		lastDate, err := time.Parse(models.DateLayout, req.LastDate)
		if err != nil {
			return nil, validationErr(err, "invalid last_date")
		}
		work.LastDate = &lastDate
	}

	room, err := s.uow.Repos().Classrooms.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, lookupErr(err, "classroom")
	}
	work.ClassroomID = room.ID

	if len(reference) > 0 {
		obj, err := s.files.Upload(ctx, FolderClassWork, reference)
		if err != nil {
			return nil, err
		}
		work.ReferenceURL = obj.URL
		work.ReferencePublicID = obj.PublicID
	}

	err = s.uow.WithinTx(ctx, func(r Repos) error {
		return storageErr(r.Classrooms.CreateClassWork(ctx, work), "failed to create classwork")
	})
	if err != nil {
		s.files.Release(ctx, work.ReferencePublicID)
		return nil, storageErr(err, "failed to create classwork")
	}

	s.logger.Info("classwork posted", zap.Int64("course_id", courseID), zap.Int64("classwork_id", work.ID))
	return work, nil
}

// ListClassWork returns the course classwork, newest first.
func (s *ClassroomService) ListClassWork(ctx context.Context, courseID int64) ([]models.ClassWork, error) {
	repos := s.uow.Repos()
	room, err := repos.Classrooms.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, lookupErr(err, "classroom")
	}
	works, err := repos.Classrooms.ListClassWorks(ctx, room.ID)
	if err != nil {
		return nil, storageErr(err, "failed to list classwork")
	}
	return works, nil
}

// SubmitWork records a submission by a student enrolled in the classwork's course.
// Marks start at zero and are set later by GradeWork.
func (s *ClassroomService) SubmitWork(ctx context.Context, classWorkID, studentID int64, req models.SubmitWorkRequest) (*models.Work, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid submission payload")
	}

	work := &models.Work{ClassWorkID: classWorkID, StudentID: studentID, Content: req.Content, Marks: decimal.Zero}
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		classWork, err := r.Classrooms.FindClassWork(ctx, classWorkID)
		if err != nil {
			return lookupErr(err, "classwork")
		}
		room, err := r.Classrooms.FindByID(ctx, classWork.ClassroomID)
		if err != nil {
			return lookupErr(err, "classroom")
		}
		if _, err := r.Students.FindByIDForUpdate(ctx, studentID); err != nil {
			return lookupErr(err, "student")
		}
		enrolled, err := r.Courses.HasStudent(ctx, room.CourseID, studentID)
		if err != nil {
			return storageErr(err, "failed to check enrollment")
		}
		if !enrolled {
			return appErrors.Clone(appErrors.ErrInvalidData, "student is not enrolled in the course")
		}
		return storageErr(r.Classrooms.CreateWork(ctx, work), "failed to submit work")
	})
	if err != nil {
		return nil, storageErr(err, "failed to submit work")
	}
	s.logger.Info("work submitted", zap.Int64("classwork_id", classWorkID), zap.Int64("student_id", studentID))
	return work, nil
}

// GradeWork sets the marks of a submission. Marks must lie within the classwork total.
// A non-nil grader must be the teacher of the course; administrators pass nil.
func (s *ClassroomService) GradeWork(ctx context.Context, workID int64, grader *int64, req models.GradeWorkRequest) (*models.Work, error) {
	var work *models.Work
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		var err error
		work, err = r.Classrooms.FindWork(ctx, workID)
		if err != nil {
			return lookupErr(err, "work")
		}
		classWork, err := r.Classrooms.FindClassWork(ctx, work.ClassWorkID)
		if err != nil {
			return lookupErr(err, "classwork")
		}
		if req.Marks.IsNegative() || req.Marks.GreaterThan(decimal.NewFromInt(int64(classWork.TotalMarks))) {
			return appErrors.Clone(appErrors.ErrInvalidData, fmt.Sprintf("marks must be between 0 and %d", classWork.TotalMarks))
		}
		if grader != nil {
			room, err := r.Classrooms.FindByID(ctx, classWork.ClassroomID)
			if err != nil {
				return lookupErr(err, "classroom")
			}
			course, err := r.Courses.FindByIDForUpdate(ctx, room.CourseID)
			if err != nil {
				return lookupErr(err, "course")
			}
			if course.TeacherID == nil || *course.TeacherID != *grader {
				return appErrors.Clone(appErrors.ErrForbidden, "only the course teacher can grade this work")
			}
		}
		work.Marks = req.Marks
		return storageErr(r.Classrooms.UpdateMarks(ctx, workID, req.Marks), "failed to grade work")
	})
	if err != nil {
		return nil, storageErr(err, "failed to grade work")
	}
	s.logger.Info("work graded", zap.Int64("work_id", workID), zap.String("marks", work.Marks.String()))
	return work, nil
}

// ListWorks returns the submissions of a classwork.
func (s *ClassroomService) ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error) {
	repos := s.uow.Repos()
	if _, err := repos.Classrooms.FindClassWork(ctx, classWorkID); err != nil {
		return nil, lookupErr(err, "classwork")
	}
	works, err := repos.Classrooms.ListWorks(ctx, classWorkID)
	if err != nil {
		return nil, storageErr(err, "failed to list works")
	}
	return works, nil
}

// DeleteClassWork removes classwork with its submissions, then releases the reference file.
func (s *ClassroomService) DeleteClassWork(ctx context.Context, classWorkID int64) error {
	var reference string
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		classWork, err := r.Classrooms.FindClassWork(ctx, classWorkID)
		if err != nil {
			return lookupErr(err, "classwork")
		}
		reference = classWork.ReferencePublicID
		return storageErr(r.Classrooms.DeleteClassWork(ctx, classWorkID), "failed to delete classwork")
	})
	if err != nil {
		return storageErr(err, "failed to delete classwork")
	}
	s.files.Release(ctx, reference)
	s.logger.Info("classwork deleted", zap.Int64("classwork_id", classWorkID))
	return nil
}
