package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// CourseAssignmentService puts a teacher in charge of a course.
type CourseAssignmentService struct {
	uow     UnitOfWork
	ledger  *LedgerService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCourseAssignmentService constructs the assignment coordinator.
func NewCourseAssignmentService(uow UnitOfWork, ledger *LedgerService, metrics *MetricsService, logger *zap.Logger) *CourseAssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseAssignmentService{uow: uow, ledger: ledger, metrics: metrics, logger: logger}
}

// Assign makes the teacher the course's teacher and records a zero COURSESTART entry on the teacher's account.
// Any previous teacher loses the course because a teacher's courses are read from the course side.
func (s *CourseAssignmentService) Assign(ctx context.Context, courseID, teacherID int64) (*models.AssignmentResult, error) {
	result := &models.AssignmentResult{CourseID: courseID, TeacherID: teacherID}
	var opened *models.Account

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		course, err := r.Courses.FindByIDForUpdate(ctx, courseID)
		if err != nil {
			return lookupErr(err, "course")
		}
		if _, err := r.Teachers.FindByIDForUpdate(ctx, teacherID); err != nil {
			return lookupErr(err, "teacher")
		}

		result.PreviousTeacherID = course.TeacherID
		if err := r.Courses.SetTeacher(ctx, courseID, &teacherID); err != nil {
			return storageErr(err, "failed to assign teacher")
		}

		account, created, err := s.ledger.openAccount(ctx, r, models.OwnerTeacher, teacherID)
		if err != nil {
			return err
		}
		if created {
			opened = account
		}
		result.AccountID = account.ID

		txn, err := s.ledger.apply(ctx, r, account.ID, models.ApplyTransactionRequest{
			Type:    models.TransactionTypeCourseStart,
			Amount:  decimal.Zero,
			Mode:    strconv.FormatInt(courseID, 10),
			Remarks: course.Name,
		})
		if err != nil {
			return err
		}
		result.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "failed to assign course")
	}

	if opened != nil {
		s.ledger.opened(opened)
	}
	s.ledger.committed(ctx, result.Transaction)
	s.metrics.RecordAssignment()

	fields := []zap.Field{zap.Int64("course_id", courseID), zap.Int64("teacher_id", teacherID)}
	if result.PreviousTeacherID != nil && *result.PreviousTeacherID != teacherID {
		fields = append(fields, zap.Int64("previous_teacher_id", *result.PreviousTeacherID))
	}
	s.logger.Info("course assigned", fields...)
	return result, nil
}
