package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/pkg/cache"
)

type imageReleaser interface {
	ReleaseAll(ctx context.Context, publicIDs []string)
}

// ReaperService deletes students, teachers and courses after detaching everything that references them.
// Each deletion is one unit of work. Stored images are released only after it commits.
type ReaperService struct {
	uow     UnitOfWork
	images  imageReleaser
	cache   cacheInvalidator
	metrics *MetricsService
	logger  *zap.Logger
}

// NewReaperService constructs the reaper.
func NewReaperService(uow UnitOfWork, images imageReleaser, invalidator cacheInvalidator, metrics *MetricsService, logger *zap.Logger) *ReaperService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReaperService{uow: uow, images: images, cache: invalidator, metrics: metrics, logger: logger}
}

// DeleteStudent removes a student, its address, enrollments, attendance marks, submissions and account.
// Fees already charged are not refunded.
func (s *ReaperService) DeleteStudent(ctx context.Context, id int64) error {
	var (
		releases  []string
		accountID int64
	)
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		releases, accountID = nil, 0
		student, err := r.Students.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "student")
		}
		if err := r.Users.DetachStudent(ctx, id); err != nil {
			return storageErr(err, "failed to detach user")
		}
		releases = appendID(releases, student.ProfileImagePublicID)
		if student.AddressID != nil {
			if err := r.Students.ClearAddress(ctx, id); err != nil {
				return storageErr(err, "failed to detach address")
			}
			if err := r.Addresses.Delete(ctx, *student.AddressID); err != nil {
				return storageErr(err, "failed to delete address")
			}
		}

		courseIDs, err := r.Students.ListCourseIDs(ctx, id)
		if err != nil {
			return storageErr(err, "failed to list student courses")
		}
		for _, courseID := range courseIDs {
			if err := r.Attendance.RemoveStudentFromCourse(ctx, courseID, id); err != nil {
				return storageErr(err, "failed to remove student attendance")
			}
			if err := r.Courses.RemoveStudent(ctx, courseID, id); err != nil {
				return storageErr(err, "failed to remove student from course")
			}
			if err := r.Classrooms.DeleteWorksByStudent(ctx, courseID, id); err != nil {
				return storageErr(err, "failed to delete student work")
			}
		}

		account, err := r.Accounts.FindByStudentID(ctx, id)
		switch {
		case err == nil:
			if err := s.deleteAccount(ctx, r, account.ID); err != nil {
				return err
			}
			accountID = account.ID
		case !errors.Is(err, sql.ErrNoRows):
			return storageErr(err, "failed to load student account")
		}

		if err := r.Students.Delete(ctx, id); err != nil {
			return storageErr(err, "failed to delete student")
		}
		return nil
	})
	if err != nil {
		return storageErr(err, "failed to delete student")
	}

	s.finish(ctx, "student", id, releases, accountID)
	return nil
}

// DeleteTeacher removes a teacher, its address, the attendance of its courses and its account.
// Its courses stay and become unassigned.
func (s *ReaperService) DeleteTeacher(ctx context.Context, id int64) error {
	var (
		releases  []string
		accountID int64
	)
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		releases, accountID = nil, 0
		teacher, err := r.Teachers.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "teacher")
		}
		if err := r.Users.DetachTeacher(ctx, id); err != nil {
			return storageErr(err, "failed to detach user")
		}
		if teacher.AddressID != nil {
			if err := r.Teachers.ClearAddress(ctx, id); err != nil {
				return storageErr(err, "failed to detach address")
			}
			if err := r.Addresses.Delete(ctx, *teacher.AddressID); err != nil {
				return storageErr(err, "failed to delete address")
			}
		}

		courseIDs, err := r.Courses.ListIDsByTeacher(ctx, id)
		if err != nil {
			return storageErr(err, "failed to list teacher courses")
		}
		for _, courseID := range courseIDs {
			if err := r.Attendance.DeleteByCourse(ctx, courseID); err != nil {
				return storageErr(err, "failed to delete course attendance")
			}
			if err := r.Courses.SetTeacher(ctx, courseID, nil); err != nil {
				return storageErr(err, "failed to unassign course")
			}
		}

		account, err := r.Accounts.FindByTeacherID(ctx, id)
		switch {
		case err == nil:
			if err := s.deleteAccount(ctx, r, account.ID); err != nil {
				return err
			}
			accountID = account.ID
		case !errors.Is(err, sql.ErrNoRows):
			return storageErr(err, "failed to load teacher account")
		}

		releases = appendID(releases, teacher.ProfileImagePublicID)
		if err := r.Teachers.Delete(ctx, id); err != nil {
			return storageErr(err, "failed to delete teacher")
		}
		return nil
	})
	if err != nil {
		return storageErr(err, "failed to delete teacher")
	}

	s.finish(ctx, "teacher", id, releases, accountID)
	return nil
}

// DeleteCourse removes a course with its classroom, classwork, submissions, attendance and enrollments.
// Fees already charged are not refunded.
func (s *ReaperService) DeleteCourse(ctx context.Context, id int64) error {
	var releases []string
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		releases = nil
		course, err := r.Courses.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "course")
		}
		releases = appendID(releases, course.ImagePublicID)

		if course.TeacherID != nil {
			if err := r.Courses.SetTeacher(ctx, id, nil); err != nil {
				return storageErr(err, "failed to unassign teacher")
			}
		}

		references, err := r.Classrooms.ListReferenceIDs(ctx, id)
		if err != nil {
			return storageErr(err, "failed to list classwork references")
		}
		releases = append(releases, references...)
		if err := r.Classrooms.DeleteByCourse(ctx, id); err != nil {
			return storageErr(err, "failed to delete classroom")
		}

		if err := r.Attendance.DeleteByCourse(ctx, id); err != nil {
			return storageErr(err, "failed to delete attendance")
		}
		if err := r.Courses.RemoveAllStudents(ctx, id); err != nil {
			return storageErr(err, "failed to detach students")
		}
		if err := r.Courses.Delete(ctx, id); err != nil {
			return storageErr(err, "failed to delete course")
		}
		return nil
	})
	if err != nil {
		return storageErr(err, "failed to delete course")
	}

	s.finish(ctx, "course", id, releases, 0)
	return nil
}

func (s *ReaperService) deleteAccount(ctx context.Context, r Repos, accountID int64) error {
	if err := r.Transactions.DeleteByAccount(ctx, accountID); err != nil {
		return storageErr(err, "failed to delete transactions")
	}
	if err := r.Accounts.Delete(ctx, accountID); err != nil {
		return storageErr(err, "failed to delete account")
	}
	return nil
}

func (s *ReaperService) finish(ctx context.Context, entity string, id int64, releases []string, accountID int64) {
	if s.images != nil && len(releases) > 0 {
		s.images.ReleaseAll(ctx, releases)
	}
	if accountID != 0 && s.cache != nil {
		_ = s.cache.Invalidate(ctx, cache.AccountPattern(accountID))
	}
	s.metrics.RecordDeletion(entity)
	s.logger.Info("entity deleted", zap.String("entity", entity), zap.Int64("id", id), zap.Int("released_objects", len(releases)))
}

func appendID(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	return append(ids, id)
}
