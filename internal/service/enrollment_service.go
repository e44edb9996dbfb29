package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// EnrollmentModeOnline is the payment mode recorded on enrollment debits.
const EnrollmentModeOnline = "ONLINE"

// EnrollmentService enrolls students in courses and charges the course fees.
type EnrollmentService struct {
	uow     UnitOfWork
	ledger  *LedgerService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewEnrollmentService constructs the enrollment coordinator.
func NewEnrollmentService(uow UnitOfWork, ledger *LedgerService, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{uow: uow, ledger: ledger, metrics: metrics, logger: logger}
}

// Enroll links the student and course, assigns a roll number if needed and debits the fees.
// Everything commits together or not at all.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.EnrollmentResult, error) {
	result := &models.EnrollmentResult{StudentID: studentID, CourseID: courseID}
	var opened *models.Account

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		student, err := r.Students.FindByIDForUpdate(ctx, studentID)
		if err != nil {
			return lookupErr(err, "student")
		}
		course, err := r.Courses.FindByIDForUpdate(ctx, courseID)
		if err != nil {
			return lookupErr(err, "course")
		}

		enrolled, err := r.Courses.HasStudent(ctx, courseID, studentID)
		if err != nil {
			return storageErr(err, "failed to check enrollment")
		}
		if enrolled {
			return appErrors.Clone(appErrors.ErrConflict, "student already enrolled in course")
		}
		if err := r.Courses.AddStudent(ctx, courseID, studentID); err != nil {
			return storageErr(err, "failed to enroll student")
		}

		result.RollNo = student.RollNo
		if student.RollNo == 0 {
			highest, err := r.Courses.MaxRollNo(ctx, courseID)
			if err != nil {
				return storageErr(err, "failed to assign roll number")
			}
			result.RollNo = highest + 1
			if err := r.Students.UpdateRollNo(ctx, studentID, result.RollNo); err != nil {
				return storageErr(err, "failed to assign roll number")
			}
		}

		account, created, err := s.ledger.openAccount(ctx, r, models.OwnerStudent, studentID)
		if err != nil {
			return err
		}
		if created {
			opened = account
		}
		result.AccountID = account.ID

		fees, err := parseFees(course.Fees)
		if err != nil {
			return err
		}
		txn, err := s.ledger.apply(ctx, r, account.ID, models.ApplyTransactionRequest{
			Type:    models.TransactionTypeDebit,
			Amount:  fees,
			Mode:    EnrollmentModeOnline,
			Remarks: course.Name,
		})
		if err != nil {
			return err
		}
		result.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "failed to enroll student")
	}

	if opened != nil {
		s.ledger.opened(opened)
	}
	s.ledger.committed(ctx, result.Transaction)
	s.metrics.RecordEnrollment()
	s.logger.Info("student enrolled",
		zap.Int64("student_id", studentID),
		zap.Int64("course_id", courseID),
		zap.Int("roll_no", result.RollNo),
	)
	return result, nil
}

// parseFees reads a course fee string as money.
func parseFees(raw string) (decimal.Decimal, error) {
	fees, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "course fees are not a number")
	}
	if err := checkMoney(fees, "course fees"); err != nil {
		return decimal.Zero, err
	}
	return fees, nil
}
