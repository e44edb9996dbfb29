package models

import "time"

// Student represents a learner registered in the institution.
type Student struct {
	ID                   int64      `db:"id" json:"id"`
	UserID               *int64     `db:"user_id" json:"user_id,omitempty"`
	AddressID            *int64     `db:"address_id" json:"address_id,omitempty"`
	RollNo               int        `db:"roll_no" json:"roll_no"`
	RegistrationNo       int        `db:"registration_no" json:"registration_no"`
	Name                 string     `db:"name" json:"name"`
	FatherName           string     `db:"father_name" json:"father_name"`
	Email                string     `db:"email" json:"email"`
	Phone                string     `db:"phone" json:"phone"`
	Sex                  string     `db:"sex" json:"sex"`
	DOB                  *time.Time `db:"dob" json:"dob,omitempty"`
	ProfileImageURL      string     `db:"profile_image_url" json:"profile_image_url"`
	ProfileImagePublicID string     `db:"profile_image_public_id" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	CourseID int64
	Page     int
	PageSize int
}

// StudentDetail adds the derived account, address and course membership.
type StudentDetail struct {
	Student
	AccountID *int64   `db:"account_id" json:"account_id,omitempty"`
	Address   *Address `db:"-" json:"address,omitempty"`
	CourseIDs []int64  `db:"-" json:"course_ids"`
}

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	FatherName     string          `json:"father_name" validate:"max=100"`
	Email          string          `json:"email" validate:"omitempty,email,max=150"`
	Phone          string          `json:"phone" validate:"max=15"`
	Sex            string          `json:"sex" validate:"omitempty,oneof=male female other"`
	DOB            *time.Time      `json:"dob"`
	RegistrationNo int             `json:"registration_no" validate:"min=0"`
	UserID         *int64          `json:"user_id"`
	Address        *AddressRequest `json:"address" validate:"omitempty"`
}

// UpdateStudentRequest changes student details. Nil fields are left alone;
// an address replaces the current one in place.
type UpdateStudentRequest struct {
	Name       *string         `json:"name" validate:"omitnil,min=1,max=100"`
	FatherName *string         `json:"father_name" validate:"omitempty,max=100"`
	Email      *string         `json:"email" validate:"omitempty,email,max=150"`
	Phone      *string         `json:"phone" validate:"omitempty,max=15"`
	Sex        *string         `json:"sex" validate:"omitempty,oneof=male female other"`
	DOB        *time.Time      `json:"dob"`
	Address    *AddressRequest `json:"address" validate:"omitempty"`
}
