package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const (
	accountColumns   = `a.id, a.owner_type, a.student_id, a.teacher_id, a.user_id, a.balance, a.created_at, a.updated_at`
	accountOwnerJoin = `FROM accounts a LEFT JOIN students s ON s.id = a.student_id LEFT JOIN teachers t ON t.id = a.teacher_id`
	selectAccount    = `SELECT ` + accountColumns + `, COALESCE(s.name, t.name, '') AS owner_name ` + accountOwnerJoin
)

// AccountRepository persists ledger accounts.
type AccountRepository struct {
	db sqlx.ExtContext
}

// FindByID fetches an account with its owner name.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := sqlx.GetContext(ctx, r.db, &account, selectAccount+` WHERE a.id = $1`, id); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByIDForUpdate locks the account row until the surrounding transaction ends.
func (r *AccountRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + `, '' AS owner_name FROM accounts a WHERE a.id = $1 FOR UPDATE`
	var account models.Account
	if err := sqlx.GetContext(ctx, r.db, &account, query, id); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByStudentID fetches the account owned by a student.
func (r *AccountRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.Account, error) {
	var account models.Account
	if err := sqlx.GetContext(ctx, r.db, &account, selectAccount+` WHERE a.student_id = $1`, studentID); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByTeacherID fetches the account owned by a teacher.
func (r *AccountRepository) FindByTeacherID(ctx context.Context, teacherID int64) (*models.Account, error) {
	var account models.Account
	if err := sqlx.GetContext(ctx, r.db, &account, selectAccount+` WHERE a.teacher_id = $1`, teacherID); err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account and sets its ID.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	const query = `INSERT INTO accounts (owner_type, student_id, teacher_id, user_id, balance, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &account.ID, query,
		account.OwnerType, account.StudentID, account.TeacherID, account.UserID, account.Balance, account.CreatedAt, account.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// UpdateBalance overwrites the stored balance.
func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	const query = `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, balance, time.Now().UTC()); err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	return nil
}

// Delete removes an account row. Its transactions must be gone first.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// List returns accounts whose owner name matches the filter.
func (r *AccountRepository) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.OwnerType != "" {
		args = append(args, filter.OwnerType)
		conditions = append(conditions, fmt.Sprintf("a.owner_type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(COALESCE(s.name, t.name, '')) LIKE $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf("%s%s ORDER BY a.id ASC LIMIT %d OFFSET %d", selectAccount, where, limit, offset)
	var accounts []models.Account
	if err := sqlx.SelectContext(ctx, r.db, &accounts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) "+accountOwnerJoin+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	return accounts, total, nil
}
