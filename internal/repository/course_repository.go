package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const courseColumns = `c.id, c.teacher_id, c.name, c.session, c.duration, c.about, c.fees, c.class_time,
        c.image_url, c.image_public_id, c.created_at, c.updated_at`

const selectCourseDetail = `SELECT ` + courseColumns + `, cr.id AS classroom_id,
        (SELECT COUNT(*) FROM course_students cs WHERE cs.course_id = c.id) AS student_count
        FROM courses c LEFT JOIN classrooms cr ON cr.course_id = c.id`

// CourseRepository persists courses and the course/student membership edge.
type CourseRepository struct {
	db sqlx.ExtContext
}

// FindByID fetches a course with its classroom and enrollment count.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	var detail models.CourseDetail
	if err := sqlx.GetContext(ctx, r.db, &detail, selectCourseDetail+` WHERE c.id = $1`, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByIDForUpdate locks the course row until the surrounding transaction ends.
func (r *CourseRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1 FOR UPDATE`
	var course models.Course
	if err := sqlx.GetContext(ctx, r.db, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns courses filtered by name or teacher.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.TeacherID > 0 {
		args = append(args, filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("c.teacher_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(c.name) LIKE $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")
	limit, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf("%s%s ORDER BY c.id ASC LIMIT %d OFFSET %d", selectCourseDetail, where, limit, offset)
	var courses []models.CourseDetail
	if err := sqlx.SelectContext(ctx, r.db, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM courses c"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// Create inserts a course and sets its ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (teacher_id, name, session, duration, about, fees, class_time, image_url, image_public_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &course.ID, query,
		course.TeacherID, course.Name, course.Session, course.Duration, course.About, course.Fees, course.ClassTime,
		course.ImageURL, course.ImagePublicID, course.CreatedAt, course.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update writes the descriptive fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = $2, session = $3, duration = $4, about = $5, fees = $6, class_time = $7, updated_at = $8
        WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Name, course.Session, course.Duration, course.About, course.Fees, course.ClassTime, course.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// UpdateImage replaces the course image reference.
func (r *CourseRepository) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	const query = `UPDATE courses SET image_url = $2, image_public_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, url, publicID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update course image: %w", err)
	}
	return nil
}

// SetTeacher points the course at a teacher, or at nobody when teacherID is nil.
func (r *CourseRepository) SetTeacher(ctx context.Context, courseID int64, teacherID *int64) error {
	const query = `UPDATE courses SET teacher_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, courseID, teacherID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set course teacher: %w", err)
	}
	return nil
}

// ListIDsByTeacher returns the course set of a teacher.
func (r *CourseRepository) ListIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	ids := []int64{}
	if err := sqlx.SelectContext(ctx, r.db, &ids, `SELECT id FROM courses WHERE teacher_id = $1 ORDER BY id`, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return ids, nil
}

// AddStudent records the enrollment edge.
func (r *CourseRepository) AddStudent(ctx context.Context, courseID, studentID int64) error {
	const query = `INSERT INTO course_students (course_id, student_id, enrolled_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, courseID, studentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add course student: %w", err)
	}
	return nil
}

// HasStudent reports whether the student is enrolled in the course.
func (r *CourseRepository) HasStudent(ctx context.Context, courseID, studentID int64) (bool, error) {
	var exists int
	const query = `SELECT 1 FROM course_students WHERE course_id = $1 AND student_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &exists, query, courseID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course student: %w", err)
	}
	return true, nil
}

// RemoveStudent deletes one enrollment edge.
func (r *CourseRepository) RemoveStudent(ctx context.Context, courseID, studentID int64) error {
	const query = `DELETE FROM course_students WHERE course_id = $1 AND student_id = $2`
	if _, err := r.db.ExecContext(ctx, query, courseID, studentID); err != nil {
		return fmt.Errorf("remove course student: %w", err)
	}
	return nil
}

// RemoveAllStudents deletes every enrollment edge of a course.
func (r *CourseRepository) RemoveAllStudents(ctx context.Context, courseID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_students WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("remove course students: %w", err)
	}
	return nil
}

// ListStudents returns the course roster ordered by roll number.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID int64) ([]models.CourseStudent, error) {
	const query = `SELECT s.id AS student_id, s.name, s.roll_no, s.registration_no, cs.enrolled_at
        FROM course_students cs JOIN students s ON s.id = cs.student_id
        WHERE cs.course_id = $1 ORDER BY s.roll_no, s.id`
	students := []models.CourseStudent{}
	if err := sqlx.SelectContext(ctx, r.db, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}

// ListStudentIDs returns the ids of every enrolled student.
func (r *CourseRepository) ListStudentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	ids := []int64{}
	const query = `SELECT student_id FROM course_students WHERE course_id = $1 ORDER BY student_id`
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, courseID); err != nil {
		return nil, fmt.Errorf("list course student ids: %w", err)
	}
	return ids, nil
}

// MaxRollNo returns the highest roll number among enrolled students, 0 when empty.
func (r *CourseRepository) MaxRollNo(ctx context.Context, courseID int64) (int, error) {
	var max int
	const query = `SELECT COALESCE(MAX(s.roll_no), 0) FROM course_students cs JOIN students s ON s.id = cs.student_id WHERE cs.course_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &max, query, courseID); err != nil {
		return 0, fmt.Errorf("max roll number: %w", err)
	}
	return max, nil
}

// Delete removes the course row. Every reference must be detached first.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
