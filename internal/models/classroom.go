package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classroom is the one-per-course container of classwork.
type Classroom struct {
	ID        int64     `db:"id" json:"id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassWork is an assignment posted to a classroom.
type ClassWork struct {
	ID                int64      `db:"id" json:"id"`
	ClassroomID       int64      `db:"classroom_id" json:"classroom_id"`
	Title             string     `db:"title" json:"title"`
	Description       string     `db:"description" json:"description"`
	TotalMarks        int        `db:"total_marks" json:"total_marks"`
	LastDate          *time.Time `db:"last_date" json:"last_date,omitempty"`
	ReferenceURL      string     `db:"reference_url" json:"reference_url"`
	ReferencePublicID string     `db:"reference_public_id" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// Work is a student's submission for a classwork.
type Work struct {
	ID          int64           `db:"id" json:"id"`
	ClassWorkID int64           `db:"classwork_id" json:"classwork_id"`
	StudentID   int64           `db:"student_id" json:"student_id"`
	Marks       decimal.Decimal `db:"marks" json:"marks"`
	Content     string          `db:"content" json:"content"`
	SubmittedAt time.Time       `db:"submitted_at" json:"submitted_at"`
}

// PostClassWorkRequest describes new classwork. The reference file travels separately.
type PostClassWorkRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=150"`
	Description string `form:"description" json:"description"`
	TotalMarks  int    `form:"total_marks" json:"total_marks" validate:"min=0"`
	LastDate    string `form:"last_date" json:"last_date" validate:"omitempty,datetime=2006-01-02"`
}

// SubmitWorkRequest is a student's submission. The student is the caller.
type SubmitWorkRequest struct {
	Content string `json:"content" validate:"required"`
}

// GradeWorkRequest sets the marks of a submission.
type GradeWorkRequest struct {
	Marks decimal.Decimal `json:"marks"`
}
