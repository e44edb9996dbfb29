package models

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Attendance is the present set of one course on one date.
type Attendance struct {
	ID         int64     `db:"id" json:"id"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	TeacherID  *int64    `db:"teacher_id" json:"teacher_id,omitempty"`
	Date       time.Time `db:"date" json:"date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	StudentIDs []int64   `db:"-" json:"student_ids"`
}

// MarkAttendanceRequest records who was present. Date defaults to today.
// A teacher marking attendance is always recorded as itself.
type MarkAttendanceRequest struct {
	TeacherID  int64   `json:"teacher_id" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StudentIDs []int64 `json:"student_ids" validate:"dive,gt=0"`
}
