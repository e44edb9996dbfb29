package models

import "time"

// Teacher represents an instructor record.
type Teacher struct {
	ID                   int64      `db:"id" json:"id"`
	UserID               *int64     `db:"user_id" json:"user_id,omitempty"`
	AddressID            *int64     `db:"address_id" json:"address_id,omitempty"`
	Name                 string     `db:"name" json:"name"`
	FatherName           string     `db:"father_name" json:"father_name"`
	Email                string     `db:"email" json:"email"`
	Phone                string     `db:"phone" json:"phone"`
	Salary               int        `db:"salary" json:"salary"`
	JoinedOn             *time.Time `db:"joined_on" json:"joined_on,omitempty"`
	ProfileImageURL      string     `db:"profile_image_url" json:"profile_image_url"`
	ProfileImagePublicID string     `db:"profile_image_public_id" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}

// TeacherDetail adds the derived account, address and course set.
type TeacherDetail struct {
	Teacher
	AccountID *int64   `db:"account_id" json:"account_id,omitempty"`
	Address   *Address `db:"-" json:"address,omitempty"`
	CourseIDs []int64  `db:"-" json:"course_ids"`
}

// CreateTeacherRequest is the payload for hiring a teacher.
type CreateTeacherRequest struct {
	Name       string          `json:"name" validate:"required,max=100"`
	FatherName string          `json:"father_name" validate:"max=100"`
	Email      string          `json:"email" validate:"omitempty,email,max=150"`
	Phone      string          `json:"phone" validate:"max=15"`
	Salary     int             `json:"salary" validate:"min=0"`
	JoinedOn   *time.Time      `json:"joined_on"`
	UserID     *int64          `json:"user_id"`
	Address    *AddressRequest `json:"address" validate:"omitempty"`
}

// UpdateTeacherRequest changes teacher details. Nil fields are left alone.
type UpdateTeacherRequest struct {
	Name       *string         `json:"name" validate:"omitnil,min=1,max=100"`
	FatherName *string         `json:"father_name" validate:"omitempty,max=100"`
	Email      *string         `json:"email" validate:"omitempty,email,max=150"`
	Phone      *string         `json:"phone" validate:"omitempty,max=15"`
	Salary     *int            `json:"salary" validate:"omitempty,min=0"`
	JoinedOn   *time.Time      `json:"joined_on"`
	Address    *AddressRequest `json:"address" validate:"omitempty"`
}

// Address is a postal address owned by a teacher or student.
type Address struct {
	ID     int64  `db:"id" json:"id"`
	City   string `db:"city" json:"city"`
	Street string `db:"street" json:"street"`
}

// AddressRequest is the address part of a create or update payload.
type AddressRequest struct {
	City   string `json:"city" validate:"required,max=100"`
	Street string `json:"street" validate:"required,max=150"`
}
