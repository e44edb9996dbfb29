package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const teacherColumns = `t.id, t.user_id, t.address_id, t.name, t.father_name, t.email, t.phone, t.salary, t.joined_on,
        t.profile_image_url, t.profile_image_public_id, t.created_at, t.updated_at`

// TeacherRepository handles persistence for teachers.
type TeacherRepository struct {
	db sqlx.ExtContext
}

// List returns teachers filtered by name or email.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error) {
	base := "FROM teachers t LEFT JOIN accounts a ON a.teacher_id = t.id"
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		base += " WHERE (LOWER(t.name) LIKE $1 OR LOWER(t.email) LIKE $1)"
	}
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf(`SELECT %s, a.id AS account_id %s ORDER BY t.id ASC LIMIT %d OFFSET %d`, teacherColumns, base, limit, offset)
	var teachers []models.TeacherDetail
	if err := sqlx.SelectContext(ctx, r.db, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher with the derived account id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	query := `SELECT ` + teacherColumns + `, a.id AS account_id
        FROM teachers t LEFT JOIN accounts a ON a.teacher_id = t.id
        WHERE t.id = $1`
	var detail models.TeacherDetail
	if err := sqlx.GetContext(ctx, r.db, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByIDForUpdate locks the teacher row until the surrounding transaction ends.
func (r *TeacherRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers t WHERE t.id = $1 FOR UPDATE`
	var teacher models.Teacher
	if err := sqlx.GetContext(ctx, r.db, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a teacher and sets its ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	const query = `INSERT INTO teachers (user_id, address_id, name, father_name, email, phone, salary, joined_on,
        profile_image_url, profile_image_public_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &teacher.ID, query,
		teacher.UserID, teacher.AddressID, teacher.Name, teacher.FatherName, teacher.Email, teacher.Phone, teacher.Salary,
		teacher.JoinedOn, teacher.ProfileImageURL, teacher.ProfileImagePublicID, teacher.CreatedAt, teacher.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update writes the editable teacher fields, including the address reference.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET address_id = $2, name = $3, father_name = $4, email = $5, phone = $6, salary = $7,
        joined_on = $8, updated_at = $9 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		teacher.ID, teacher.AddressID, teacher.Name, teacher.FatherName, teacher.Email, teacher.Phone, teacher.Salary,
		teacher.JoinedOn, teacher.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// UpdateImage replaces the profile image reference.
func (r *TeacherRepository) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	const query = `UPDATE teachers SET profile_image_url = $2, profile_image_public_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, url, publicID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update teacher image: %w", err)
	}
	return nil
}

// ClearAddress drops the teacher's address reference.
func (r *TeacherRepository) ClearAddress(ctx context.Context, id int64) error {
	const query = `UPDATE teachers SET address_id = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear teacher address: %w", err)
	}
	return nil
}

// Delete removes the teacher row. Every reference must be detached first.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
