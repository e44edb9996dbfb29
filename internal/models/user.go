package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleTeacher    UserRole = "TEACHER"
	RoleStudent    UserRole = "STUDENT"
)

// User is a login identity. It may point at the student or teacher it represents.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Role      UserRole  `db:"role" json:"role"`
	StudentID *int64    `db:"student_id" json:"student_id,omitempty"`
	TeacherID *int64    `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Principal is the caller behind a request, resolved from its token.
// Administrators carry no student or teacher reference.
type Principal struct {
	UserID    int64    `json:"user_id"`
	Role      UserRole `json:"role"`
	StudentID *int64   `json:"student_id,omitempty"`
	TeacherID *int64   `json:"teacher_id,omitempty"`
}

// IsAdmin reports whether the principal administers the school.
func (p *Principal) IsAdmin() bool {
	return p != nil && (p.Role == RoleAdmin || p.Role == RoleSuperAdmin)
}

// ActsAsStudent reports whether the principal may act on the student's own records.
func (p *Principal) ActsAsStudent(studentID int64) bool {
	return p != nil && p.StudentID != nil && *p.StudentID == studentID
}

// ActsAsTeacher reports whether the principal may act on the teacher's own records.
func (p *Principal) ActsAsTeacher(teacherID int64) bool {
	return p != nil && p.TeacherID != nil && *p.TeacherID == teacherID
}

// Profile is the caller's own view: who it is and the record it stands for.
type Profile struct {
	Principal
	Student *StudentDetail `json:"student,omitempty"`
	Teacher *TeacherDetail `json:"teacher,omitempty"`
}
