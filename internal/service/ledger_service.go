package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/cache"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// LedgerService applies transactions to accounts and opens accounts on demand.
// Every balance change and its transaction row commit together.
type LedgerService struct {
	uow       UnitOfWork
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedgerService constructs the ledger.
func NewLedgerService(uow UnitOfWork, invalidator cacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LedgerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{uow: uow, cache: invalidator, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// ApplyTransaction records one transaction against the account and returns it with its balance snapshot.
func (s *LedgerService) ApplyTransaction(ctx context.Context, accountID int64, req models.ApplyTransactionRequest) (*models.Transaction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid transaction payload")
	}
	if err := checkMoney(req.Amount, "amount"); err != nil {
		return nil, err
	}

	var txn *models.Transaction
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		applied, err := s.apply(ctx, r, accountID, req)
		txn = applied
		return err
	})
	if err != nil {
		return nil, storageErr(err, "failed to apply transaction")
	}

	s.committed(ctx, txn)
	return txn, nil
}

// OpenAccount returns the owner's account, creating an empty one if it has none.
func (s *LedgerService) OpenAccount(ctx context.Context, ownerType models.OwnerType, ownerID int64) (*models.Account, error) {
	var (
		account *models.Account
		created bool
	)
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		var err error
		account, created, err = s.openAccount(ctx, r, ownerType, ownerID)
		return err
	})
	if err != nil {
		return nil, storageErr(err, "failed to open account")
	}
	if created {
		s.opened(account)
	}
	return account, nil
}

// apply runs inside the caller's unit of work.
func (s *LedgerService) apply(ctx context.Context, r Repos, accountID int64, req models.ApplyTransactionRequest) (*models.Transaction, error) {
	account, err := r.Accounts.FindByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, lookupErr(err, "account")
	}

	amount := normalizeAmount(req.Type, req.Amount)
	balance := account.Balance.Add(amount)
	if balance.Abs().GreaterThanOrEqual(maxMoney) {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, "resulting balance is out of range")
	}
	txn := &models.Transaction{
		AccountID:  account.ID,
		Type:       strings.TrimSpace(req.Type),
		Amount:     amount,
		Balance:    balance,
		Mode:       req.Mode,
		Remarks:    remarksOf(req),
		RecordedAt: s.now().UTC(),
	}

	if err := r.Accounts.UpdateBalance(ctx, account.ID, balance); err != nil {
		return nil, storageErr(err, "failed to update account balance")
	}
	if err := r.Transactions.Create(ctx, txn); err != nil {
		return nil, storageErr(err, "failed to record transaction")
	}
	return txn, nil
}

// openAccount runs inside the caller's unit of work. The owner row is locked so concurrent opens serialize.
func (s *LedgerService) openAccount(ctx context.Context, r Repos, ownerType models.OwnerType, ownerID int64) (*models.Account, bool, error) {
	account := &models.Account{OwnerType: ownerType, Balance: decimal.Zero}
	var existing *models.Account
	var err error

	switch ownerType {
	case models.OwnerStudent:
		student, lerr := r.Students.FindByIDForUpdate(ctx, ownerID)
		if lerr != nil {
			return nil, false, lookupErr(lerr, "student")
		}
		account.StudentID = &student.ID
		account.UserID = student.UserID
		account.OwnerName = student.Name
		existing, err = r.Accounts.FindByStudentID(ctx, ownerID)
	case models.OwnerTeacher:
		teacher, lerr := r.Teachers.FindByIDForUpdate(ctx, ownerID)
		if lerr != nil {
			return nil, false, lookupErr(lerr, "teacher")
		}
		account.TeacherID = &teacher.ID
		account.UserID = teacher.UserID
		account.OwnerName = teacher.Name
		existing, err = r.Accounts.FindByTeacherID(ctx, ownerID)
	default:
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown owner type %q", ownerType))
	}

	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, storageErr(err, "failed to load account")
	}
	if err := r.Accounts.Create(ctx, account); err != nil {
		return nil, false, storageErr(err, "failed to create account")
	}
	return account, true, nil
}

// committed runs the post-commit side effects of applied transactions.
func (s *LedgerService) committed(ctx context.Context, txns ...*models.Transaction) {
	for _, txn := range txns {
		if txn == nil {
			continue
		}
		s.metrics.RecordLedgerTransaction(txn.Type, txn.Amount)
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, cache.AccountPattern(txn.AccountID))
		}
		s.logger.Info("ledger transaction applied",
			zap.Int64("account_id", txn.AccountID),
			zap.Int64("transaction_id", txn.ID),
			zap.String("type", txn.Type),
			zap.String("amount", txn.Amount.StringFixed(2)),
			zap.String("balance", txn.Balance.StringFixed(2)),
		)
	}
}

func (s *LedgerService) opened(account *models.Account) {
	s.metrics.RecordAccountOpened(string(account.OwnerType))
	s.logger.Info("account opened",
		zap.Int64("account_id", account.ID),
		zap.String("owner_type", string(account.OwnerType)),
		zap.Int64("owner_id", account.OwnerID()),
	)
}

// maxMoney is the exclusive bound of a NUMERIC(14,2) column.
var maxMoney = decimal.New(1, 12)

// checkMoney rejects values a NUMERIC(14,2) column cannot hold exactly.
func checkMoney(amount decimal.Decimal, field string) error {
	if !amount.Equal(amount.Truncate(2)) {
		return appErrors.Clone(appErrors.ErrInvalidData, field+" has more than 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxMoney) {
		return appErrors.Clone(appErrors.ErrInvalidData, field+" is out of range")
	}
	return nil
}

// normalizeAmount forces debits negative. Other types keep the supplied value.
func normalizeAmount(txnType string, amount decimal.Decimal) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(txnType), models.TransactionTypeDebit) {
		return amount.Abs().Neg()
	}
	return amount
}

const maxRemarks = 255

func remarksOf(req models.ApplyTransactionRequest) string {
	remarks := req.Remarks
	if req.RecordedBy != "" {
		remarks = strings.TrimSpace(remarks + " / " + req.RecordedBy)
	}
	if runes := []rune(remarks); len(runes) > maxRemarks {
		remarks = string(runes[:maxRemarks])
	}
	return remarks
}
