package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/cache"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/export"
)

type accountCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

type statementRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// AccountService serves read models over the ledger.
type AccountService struct {
	uow       UnitOfWork
	cache     accountCache
	ttl       time.Duration
	renderers map[string]statementRenderer
	logger    *zap.Logger
}

// NewAccountService constructs the account read service with CSV and PDF statements.
func NewAccountService(uow UnitOfWork, detailCache accountCache, ttl time.Duration, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		uow:   uow,
		cache: detailCache,
		ttl:   ttl,
		renderers: map[string]statementRenderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// List searches accounts by owner name.
func (s *AccountService) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, *models.Pagination, error) {
	accounts, total, err := s.uow.Repos().Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list accounts")
	}
	return accounts, paginationOf(filter.Page, filter.PageSize, total), nil
}

// Get returns the account with its full history in insertion order.
func (s *AccountService) Get(ctx context.Context, id int64) (*models.AccountDetail, error) {
	key := cache.AccountKey(id)
	var cached models.AccountDetail
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	repos := s.uow.Repos()
	account, err := repos.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "account")
	}
	txns, err := repos.Transactions.ListByAccount(ctx, id)
	if err != nil {
		return nil, storageErr(err, "failed to list transactions")
	}

	detail := &models.AccountDetail{Account: *account, Transactions: txns}
	if s.cache != nil {
		s.cache.Set(ctx, key, detail, s.ttl)
	}
	return detail, nil
}

// ForOwner returns the account held by the student or teacher, with its history.
func (s *AccountService) ForOwner(ctx context.Context, ownerType models.OwnerType, ownerID int64) (*models.AccountDetail, error) {
	repos := s.uow.Repos()
	var (
		account *models.Account
		err     error
	)
	switch ownerType {
	case models.OwnerStudent:
		account, err = repos.Accounts.FindByStudentID(ctx, ownerID)
	case models.OwnerTeacher:
		account, err = repos.Accounts.FindByTeacherID(ctx, ownerID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown owner type %q", ownerType))
	}
	if err != nil {
		return nil, lookupErr(err, "account")
	}
	return s.Get(ctx, account.ID)
}

// Reconcile replays the history and compares it with the stored balance.
func (s *AccountService) Reconcile(ctx context.Context, id int64) (*models.Reconciliation, error) {
	repos := s.uow.Repos()
	account, err := repos.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "account")
	}
	sum, count, err := repos.Transactions.SumByAccount(ctx, id)
	if err != nil {
		return nil, storageErr(err, "failed to sum transactions")
	}

	result := &models.Reconciliation{
		AccountID:        id,
		Balance:          account.Balance,
		Replayed:         sum,
		TransactionCount: count,
		Consistent:       account.Balance.Equal(sum),
	}
	if !result.Consistent {
		s.logger.Error("account balance drift",
			zap.Int64("account_id", id),
			zap.String("balance", account.Balance.StringFixed(2)),
			zap.String("replayed", sum.StringFixed(2)),
		)
	}
	return result, nil
}

// Statement renders the account history as csv or pdf.
func (s *AccountService) Statement(ctx context.Context, id int64, format string) (*models.Statement, error) {
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported statement format %q", format))
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(statementDataset(detail))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
	}
	return &models.Statement{
		Filename:    fmt.Sprintf("account-%d-statement.%s", id, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func statementDataset(detail *models.AccountDetail) export.Dataset {
	headers := []string{"id", "recorded_at", "type", "mode", "remarks", "amount", "balance"}
	rows := make([]map[string]string, 0, len(detail.Transactions))
	for _, txn := range detail.Transactions {
		rows = append(rows, map[string]string{
			"id":          strconv.FormatInt(txn.ID, 10),
			"recorded_at": txn.RecordedAt.UTC().Format(time.RFC3339),
			"type":        txn.Type,
			"mode":        txn.Mode,
			"remarks":     txn.Remarks,
			"amount":      txn.Amount.StringFixed(2),
			"balance":     txn.Balance.StringFixed(2),
		})
	}
	return export.Dataset{
		Title: fmt.Sprintf("Account %d statement", detail.ID),
		Summary: []string{
			fmt.Sprintf("Owner: %s (%s)", detail.OwnerName, detail.OwnerType),
			fmt.Sprintf("Balance: %s", detail.Balance.StringFixed(2)),
			fmt.Sprintf("Transactions: %d", len(detail.Transactions)),
		},
		Headers: headers,
		Rows:    rows,
		Numeric: map[string]bool{"id": true, "amount": true, "balance": true},
	}
}
