package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const studentColumns = `s.id, s.user_id, s.address_id, s.roll_no, s.registration_no, s.name, s.father_name, s.email, s.phone,
        s.sex, s.dob, s.profile_image_url, s.profile_image_public_id, s.created_at, s.updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db sqlx.ExtContext
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := "FROM students s LEFT JOIN accounts a ON a.student_id = s.id"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM course_students cs WHERE cs.student_id = s.id AND cs.course_id = $%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.name) LIKE $%d OR LOWER(s.email) LIKE $%d)", len(args), len(args)))
	}
	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf(`SELECT %s, a.id AS account_id %s ORDER BY s.id ASC LIMIT %d OFFSET %d`, studentColumns, base, limit, offset)
	var students []models.StudentDetail
	if err := sqlx.SelectContext(ctx, r.db, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student with the derived account id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	query := `SELECT ` + studentColumns + `, a.id AS account_id
        FROM students s LEFT JOIN accounts a ON a.student_id = s.id
        WHERE s.id = $1`
	var detail models.StudentDetail
	if err := sqlx.GetContext(ctx, r.db, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByIDForUpdate locks the student row until the surrounding transaction ends.
func (r *StudentRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1 FOR UPDATE`
	var student models.Student
	if err := sqlx.GetContext(ctx, r.db, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// NextRegistrationNo returns one past the highest registration number in use.
func (r *StudentRepository) NextRegistrationNo(ctx context.Context) (int, error) {
	var next int
	if err := sqlx.GetContext(ctx, r.db, &next, `SELECT COALESCE(MAX(registration_no), 0) + 1 FROM students`); err != nil {
		return 0, fmt.Errorf("next registration number: %w", err)
	}
	return next, nil
}

// Create inserts a new student record and sets its ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (user_id, address_id, roll_no, registration_no, name, father_name, email, phone, sex, dob,
        profile_image_url, profile_image_public_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &student.ID, query,
		student.UserID, student.AddressID, student.RollNo, student.RegistrationNo, student.Name, student.FatherName,
		student.Email, student.Phone, student.Sex, student.DOB, student.ProfileImageURL, student.ProfileImagePublicID,
		student.CreatedAt, student.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateRollNo sets the student's roll number.
func (r *StudentRepository) UpdateRollNo(ctx context.Context, id int64, rollNo int) error {
	const query = `UPDATE students SET roll_no = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, rollNo, time.Now().UTC()); err != nil {
		return fmt.Errorf("update student roll number: %w", err)
	}
	return nil
}

// Update writes the editable student fields, including the address reference.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET address_id = $2, name = $3, father_name = $4, email = $5, phone = $6, sex = $7, dob = $8,
        updated_at = $9 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		student.ID, student.AddressID, student.Name, student.FatherName, student.Email, student.Phone, student.Sex, student.DOB,
		student.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// ClearAddress drops the student's address reference.
func (r *StudentRepository) ClearAddress(ctx context.Context, id int64) error {
	const query = `UPDATE students SET address_id = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear student address: %w", err)
	}
	return nil
}

// UpdateImage replaces the profile image reference.
func (r *StudentRepository) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	const query = `UPDATE students SET profile_image_url = $2, profile_image_public_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, url, publicID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update student image: %w", err)
	}
	return nil
}

// ListCourseIDs returns the courses the student is enrolled in.
func (r *StudentRepository) ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error) {
	ids := []int64{}
	const query = `SELECT course_id FROM course_students WHERE student_id = $1 ORDER BY course_id`
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return ids, nil
}

// Delete removes the student row. Every reference must be detached first.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
