package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
)

const classWorkColumns = `id, classroom_id, title, description, total_marks, last_date, reference_url, reference_public_id, created_at`

// ClassroomRepository persists classrooms, their classwork and submitted work.
type ClassroomRepository struct {
	db sqlx.ExtContext
}

// FindByID fetches a classroom.
func (r *ClassroomRepository) FindByID(ctx context.Context, id int64) (*models.Classroom, error) {
	var room models.Classroom
	if err := sqlx.GetContext(ctx, r.db, &room, `SELECT id, course_id, created_at FROM classrooms WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByCourse fetches the classroom of a course.
func (r *ClassroomRepository) FindByCourse(ctx context.Context, courseID int64) (*models.Classroom, error) {
	var room models.Classroom
	if err := sqlx.GetContext(ctx, r.db, &room, `SELECT id, course_id, created_at FROM classrooms WHERE course_id = $1`, courseID); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a classroom and sets its ID.
func (r *ClassroomRepository) Create(ctx context.Context, room *models.Classroom) error {
	room.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO classrooms (course_id, created_at) VALUES ($1, $2) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &room.ID, query, room.CourseID, room.CreatedAt); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// CreateClassWork inserts classwork and sets its ID.
func (r *ClassroomRepository) CreateClassWork(ctx context.Context, work *models.ClassWork) error {
	work.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO classworks (classroom_id, title, description, total_marks, last_date, reference_url, reference_public_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &work.ID, query,
		work.ClassroomID, work.Title, work.Description, work.TotalMarks, work.LastDate, work.ReferenceURL, work.ReferencePublicID, work.CreatedAt,
	); err != nil {
		return fmt.Errorf("create classwork: %w", err)
	}
	return nil
}

// FindClassWork fetches one classwork.
func (r *ClassroomRepository) FindClassWork(ctx context.Context, id int64) (*models.ClassWork, error) {
	var work models.ClassWork
	if err := sqlx.GetContext(ctx, r.db, &work, `SELECT `+classWorkColumns+` FROM classworks WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &work, nil
}

// ListClassWorks returns a classroom's classwork, newest first.
func (r *ClassroomRepository) ListClassWorks(ctx context.Context, classroomID int64) ([]models.ClassWork, error) {
	works := []models.ClassWork{}
	query := `SELECT ` + classWorkColumns + ` FROM classworks WHERE classroom_id = $1 ORDER BY id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &works, query, classroomID); err != nil {
		return nil, fmt.Errorf("list classworks: %w", err)
	}
	return works, nil
}

// ListReferenceIDs returns the stored reference files of every classwork in a course.
func (r *ClassroomRepository) ListReferenceIDs(ctx context.Context, courseID int64) ([]string, error) {
	ids := []string{}
	const query = `SELECT cw.reference_public_id FROM classworks cw JOIN classrooms cr ON cr.id = cw.classroom_id
        WHERE cr.course_id = $1 AND cw.reference_public_id <> '' ORDER BY cw.id`
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, courseID); err != nil {
		return nil, fmt.Errorf("list classwork references: %w", err)
	}
	return ids, nil
}

// DeleteClassWork removes classwork together with its submissions.
func (r *ClassroomRepository) DeleteClassWork(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE classwork_id = $1`, id); err != nil {
		return fmt.Errorf("delete classwork submissions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM classworks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete classwork: %w", err)
	}
	return nil
}

// CreateWork inserts a submission and sets its ID.
func (r *ClassroomRepository) CreateWork(ctx context.Context, work *models.Work) error {
	work.SubmittedAt = time.Now().UTC()
	const query = `INSERT INTO works (classwork_id, student_id, marks, content, submitted_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &work.ID, query, work.ClassWorkID, work.StudentID, work.Marks, work.Content, work.SubmittedAt); err != nil {
		return fmt.Errorf("create work: %w", err)
	}
	return nil
}

// FindWork fetches one submission.
func (r *ClassroomRepository) FindWork(ctx context.Context, id int64) (*models.Work, error) {
	var work models.Work
	const query = `SELECT id, classwork_id, student_id, marks, content, submitted_at FROM works WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &work, query, id); err != nil {
		return nil, err
	}
	return &work, nil
}

// UpdateMarks sets the marks awarded to a submission.
func (r *ClassroomRepository) UpdateMarks(ctx context.Context, id int64, marks decimal.Decimal) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE works SET marks = $2 WHERE id = $1`, id, marks); err != nil {
		return fmt.Errorf("update work marks: %w", err)
	}
	return nil
}

// ListWorks returns the submissions of a classwork.
func (r *ClassroomRepository) ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error) {
	works := []models.Work{}
	const query = `SELECT id, classwork_id, student_id, marks, content, submitted_at FROM works WHERE classwork_id = $1 ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &works, query, classWorkID); err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	return works, nil
}

// DeleteWorksByStudent removes a student's submissions within one course.
func (r *ClassroomRepository) DeleteWorksByStudent(ctx context.Context, courseID, studentID int64) error {
	const query = `DELETE FROM works w USING classworks cw, classrooms cr
        WHERE w.classwork_id = cw.id AND cw.classroom_id = cr.id AND cr.course_id = $1 AND w.student_id = $2`
	if _, err := r.db.ExecContext(ctx, query, courseID, studentID); err != nil {
		return fmt.Errorf("delete student works: %w", err)
	}
	return nil
}

// DeleteByCourse removes the course classroom with all classwork and submissions.
func (r *ClassroomRepository) DeleteByCourse(ctx context.Context, courseID int64) error {
	const works = `DELETE FROM works w USING classworks cw, classrooms cr
        WHERE w.classwork_id = cw.id AND cw.classroom_id = cr.id AND cr.course_id = $1`
	if _, err := r.db.ExecContext(ctx, works, courseID); err != nil {
		return fmt.Errorf("delete course works: %w", err)
	}
	const classworks = `DELETE FROM classworks cw USING classrooms cr WHERE cw.classroom_id = cr.id AND cr.course_id = $1`
	if _, err := r.db.ExecContext(ctx, classworks, courseID); err != nil {
		return fmt.Errorf("delete course classworks: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM classrooms WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("delete classroom: %w", err)
	}
	return nil
}
