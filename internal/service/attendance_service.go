package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// AttendanceService records which enrolled students attended a course on a date.
// There is at most one record per course and date; marking again overwrites it.
type AttendanceService struct {
	uow       UnitOfWork
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(uow UnitOfWork, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{uow: uow, validator: validate, logger: logger, now: time.Now}
}

// Mark stores the present set for the course on the requested date, today by default.
// The recording teacher must teach the course. Every present id must belong to an
// enrolled student; duplicates collapse.
func (s *AttendanceService) Mark(ctx context.Context, courseID int64, req models.MarkAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid attendance payload")
	}
	date, err := s.dateOf(req.Date)
	if err != nil {
		return nil, err
	}

	var (
		record      *models.Attendance
		overwritten bool
	)
	err = s.uow.WithinTx(ctx, func(r Repos) error {
		course, err := r.Courses.FindByIDForUpdate(ctx, courseID)
		if err != nil {
			return lookupErr(err, "course")
		}
		if _, err := r.Teachers.FindByID(ctx, req.TeacherID); err != nil {
			return lookupErr(err, "teacher")
		}
		if course.TeacherID == nil || *course.TeacherID != req.TeacherID {
			return appErrors.Clone(appErrors.ErrForbidden, "only the course teacher can mark attendance")
		}
		enrolled, err := r.Courses.ListStudentIDs(ctx, courseID)
		if err != nil {
			return storageErr(err, "failed to list course students")
		}
		present, strangers := intersectIDs(req.StudentIDs, enrolled)
		if len(strangers) > 0 {
			return appErrors.Clone(appErrors.ErrInvalidData, fmt.Sprintf("students not enrolled in the course: %s", joinIDs(strangers)))
		}
		teacherID := req.TeacherID

		existing, err := r.Attendance.FindByCourseAndDate(ctx, courseID, date)
		switch {
		case err == nil:
			overwritten = true
			record = existing
			if err := r.Attendance.UpdateTeacher(ctx, record.ID, &teacherID); err != nil {
				return storageErr(err, "failed to update attendance")
			}
			record.TeacherID = &teacherID
		case errors.Is(err, sql.ErrNoRows):
			record = &models.Attendance{CourseID: courseID, TeacherID: &teacherID, Date: date}
			if err := r.Attendance.Create(ctx, record); err != nil {
				return storageErr(err, "failed to create attendance")
			}
		default:
			return storageErr(err, "failed to load attendance")
		}

		if err := r.Attendance.ReplaceStudents(ctx, record.ID, present); err != nil {
			return storageErr(err, "failed to record present students")
		}
		record.StudentIDs = present
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "failed to mark attendance")
	}

	s.logger.Info("attendance marked",
		zap.Int64("course_id", courseID),
		zap.String("date", date.Format(models.DateLayout)),
		zap.Int("present", len(record.StudentIDs)),
		zap.Bool("overwritten", overwritten),
	)
	return record, nil
}

// ForCourse lists every attendance record of a course.
func (s *AttendanceService) ForCourse(ctx context.Context, courseID int64) ([]models.Attendance, error) {
	repos := s.uow.Repos()
	if _, err := repos.Courses.FindByID(ctx, courseID); err != nil {
		return nil, lookupErr(err, "course")
	}
	records, err := repos.Attendance.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storageErr(err, "failed to list attendance")
	}
	return records, nil
}

// ForStudent lists the records of a course in which the student was present.
func (s *AttendanceService) ForStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error) {
	repos := s.uow.Repos()
	if _, err := repos.Courses.FindByID(ctx, courseID); err != nil {
		return nil, lookupErr(err, "course")
	}
	if _, err := repos.Students.FindByID(ctx, studentID); err != nil {
		return nil, lookupErr(err, "student")
	}
	records, err := repos.Attendance.ListByCourseAndStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, storageErr(err, "failed to list attendance")
	}
	return records, nil
}

func (s *AttendanceService) dateOf(raw string) (time.Time, error) {
	if raw == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance date")
	}
	return date, nil
}

// intersectIDs splits the distinct requested ids into those allowed and those not, both sorted.
func intersectIDs(requested, allowed []int64) (kept, rejected []int64) {
	allowedSet := make(map[int64]struct{}, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(requested))
	kept = make([]int64, 0, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := allowedSet[id]; !ok {
			rejected = append(rejected, id)
			continue
		}
		kept = append(kept, id)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	sort.Slice(rejected, func(i, j int) bool { return rejected[i] < rejected[j] })
	return kept, rejected
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
