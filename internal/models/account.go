package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerType distinguishes student accounts from teacher accounts.
type OwnerType string

const (
	OwnerStudent OwnerType = "STUDENT"
	OwnerTeacher OwnerType = "TEACHER"
)

// Transaction types with special meaning to the ledger. Any other label is accepted as-is.
const (
	TransactionTypeDebit       = "DEBIT"
	TransactionTypeCredit      = "CREDIT"
	TransactionTypeCourseStart = "COURSESTART"
)

// Account is the running balance of exactly one student or teacher.
type Account struct {
	ID        int64           `db:"id" json:"id"`
	OwnerType OwnerType       `db:"owner_type" json:"owner_type"`
	StudentID *int64          `db:"student_id" json:"student_id,omitempty"`
	TeacherID *int64          `db:"teacher_id" json:"teacher_id,omitempty"`
	UserID    *int64          `db:"user_id" json:"user_id,omitempty"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	OwnerName string          `db:"owner_name" json:"owner_name"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// OwnerID returns the id of whichever owner the account belongs to.
func (a *Account) OwnerID() int64 {
	if a.StudentID != nil {
		return *a.StudentID
	}
	if a.TeacherID != nil {
		return *a.TeacherID
	}
	return 0
}

// Transaction is one immutable ledger entry. Balance is the account balance right after it was applied.
type Transaction struct {
	ID         int64           `db:"id" json:"id"`
	AccountID  int64           `db:"account_id" json:"account_id"`
	Type       string          `db:"type" json:"type"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
	Mode       string          `db:"mode" json:"mode"`
	Remarks    string          `db:"remarks" json:"remarks"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"`
}

// AccountDetail is an account together with its ordered history.
type AccountDetail struct {
	Account
	Transactions []Transaction `json:"transactions"`
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Search    string
	OwnerType OwnerType
	Page      int
	PageSize  int
}

// ApplyTransactionRequest is the input to the ledger.
type ApplyTransactionRequest struct {
	Type       string          `json:"type" validate:"required,max=30"`
	Amount     decimal.Decimal `json:"amount"`
	Mode       string          `json:"mode" validate:"max=40"`
	Remarks    string          `json:"remarks" validate:"max=255"`
	RecordedBy string          `json:"-"`
}

// Reconciliation compares the stored balance with the replayed history.
type Reconciliation struct {
	AccountID        int64           `json:"account_id"`
	Balance          decimal.Decimal `json:"balance"`
	Replayed         decimal.Decimal `json:"replayed"`
	TransactionCount int             `json:"transaction_count"`
	Consistent       bool            `json:"consistent"`
}

// Statement is a rendered account history document.
type Statement struct {
	Filename    string
	ContentType string
	Data        []byte
}
