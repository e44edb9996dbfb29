package models

import "time"

// Course is a paid course taught by at most one teacher.
type Course struct {
	ID            int64     `db:"id" json:"id"`
	TeacherID     *int64    `db:"teacher_id" json:"teacher_id,omitempty"`
	Name          string    `db:"name" json:"name"`
	Session       string    `db:"session" json:"session"`
	Duration      string    `db:"duration" json:"duration"`
	About         string    `db:"about" json:"about"`
	Fees          string    `db:"fees" json:"fees"`
	ClassTime     string    `db:"class_time" json:"class_time"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	ImagePublicID string    `db:"image_public_id" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	Search    string
	TeacherID int64
	Page      int
	PageSize  int
}

// CourseDetail adds the classroom and enrollment count.
type CourseDetail struct {
	Course
	ClassroomID  *int64 `db:"classroom_id" json:"classroom_id,omitempty"`
	StudentCount int    `db:"student_count" json:"student_count"`
}

// CourseStudent is one enrolled student as seen from the course roster.
type CourseStudent struct {
	StudentID      int64     `db:"student_id" json:"student_id"`
	Name           string    `db:"name" json:"name"`
	RollNo         int       `db:"roll_no" json:"roll_no"`
	RegistrationNo int       `db:"registration_no" json:"registration_no"`
	EnrolledAt     time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Session   string `json:"session" validate:"max=50"`
	Duration  string `json:"duration" validate:"max=50"`
	About     string `json:"about" validate:"max=2000"`
	Fees      string `json:"fees" validate:"required,max=50"`
	ClassTime string `json:"class_time" validate:"max=50"`
}

// UpdateCourseRequest changes course details. Nil fields are left alone.
type UpdateCourseRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	Session   *string `json:"session" validate:"omitempty,max=50"`
	Duration  *string `json:"duration" validate:"omitempty,max=50"`
	About     *string `json:"about" validate:"omitempty,max=2000"`
	Fees      *string `json:"fees" validate:"omitempty,max=50"`
	ClassTime *string `json:"class_time" validate:"omitempty,max=50"`
}

// EnrollmentResult reports the outcome of an enrollment.
type EnrollmentResult struct {
	StudentID   int64        `json:"student_id"`
	CourseID    int64        `json:"course_id"`
	RollNo      int          `json:"roll_no"`
	AccountID   int64        `json:"account_id"`
	Transaction *Transaction `json:"transaction"`
}

// AssignmentResult reports the outcome of assigning a teacher to a course.
type AssignmentResult struct {
	CourseID          int64        `json:"course_id"`
	TeacherID         int64        `json:"teacher_id"`
	PreviousTeacherID *int64       `json:"previous_teacher_id,omitempty"`
	AccountID         int64        `json:"account_id"`
	Transaction       *Transaction `json:"transaction"`
}
