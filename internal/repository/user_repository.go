package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// UserRepository maintains the user back-references to students and teachers.
type UserRepository struct {
	db sqlx.ExtContext
}

// FindByID fetches a user with its student and teacher references.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT id, username, name, role, student_id, teacher_id, created_at, updated_at FROM users WHERE id = $1`
	var user models.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// DetachStudent clears the student reference of any user pointing at it.
func (r *UserRepository) DetachStudent(ctx context.Context, studentID int64) error {
	const query = `UPDATE users SET student_id = NULL, updated_at = $2 WHERE student_id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("detach user from student: %w", err)
	}
	return nil
}

// DetachTeacher clears the teacher reference of any user pointing at it.
func (r *UserRepository) DetachTeacher(ctx context.Context, teacherID int64) error {
	const query = `UPDATE users SET teacher_id = NULL, updated_at = $2 WHERE teacher_id = $1`
	if _, err := r.db.ExecContext(ctx, query, teacherID, time.Now().UTC()); err != nil {
		return fmt.Errorf("detach user from teacher: %w", err)
	}
	return nil
}
