package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// TransactionRepository persists ledger entries. Entries are append-only.
type TransactionRepository struct {
	db sqlx.ExtContext
}

// Create appends an entry and sets its ID.
func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	const query = `INSERT INTO transactions (account_id, type, amount, balance, mode, remarks, recorded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &txn.ID, query,
		txn.AccountID, txn.Type, txn.Amount, txn.Balance, txn.Mode, txn.Remarks, txn.RecordedAt,
	); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListByAccount returns the account history in insertion order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	const query = `SELECT id, account_id, type, amount, balance, mode, remarks, recorded_at
        FROM transactions WHERE account_id = $1 ORDER BY id ASC`
	txns := []models.Transaction{}
	if err := sqlx.SelectContext(ctx, r.db, &txns, query, accountID); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// SumByAccount returns the sum of amounts and the number of entries.
func (r *TransactionRepository) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, int, error) {
	var row struct {
		Total decimal.Decimal `db:"total"`
		Count int             `db:"count"`
	}
	const query = `SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count FROM transactions WHERE account_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, accountID); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum transactions: %w", err)
	}
	return row.Total, row.Count, nil
}

// DeleteByAccount removes the whole history of an account.
func (r *TransactionRepository) DeleteByAccount(ctx context.Context, accountID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}
