package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// AttendanceRepository persists per-course, per-date present sets.
type AttendanceRepository struct {
	db sqlx.ExtContext
}

type attendanceRow struct {
	models.Attendance
	Students pq.Int64Array `db:"student_ids"`
}

const selectAttendance = `SELECT a.id, a.course_id, a.teacher_id, a.date, a.created_at,
        COALESCE(ARRAY_AGG(st.student_id ORDER BY st.student_id) FILTER (WHERE st.student_id IS NOT NULL), '{}') AS student_ids
        FROM attendance a LEFT JOIN attendance_students st ON st.attendance_id = a.id`

// FindByCourseAndDate locks and returns the record of a course on a date.
func (r *AttendanceRepository) FindByCourseAndDate(ctx context.Context, courseID int64, date time.Time) (*models.Attendance, error) {
	const query = `SELECT id, course_id, teacher_id, date, created_at FROM attendance WHERE course_id = $1 AND date = $2 FOR UPDATE`
	var record models.Attendance
	if err := sqlx.GetContext(ctx, r.db, &record, query, courseID, date); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts an attendance header and sets its ID.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	record.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO attendance (course_id, teacher_id, date, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := sqlx.GetContext(ctx, r.db, &record.ID, query, record.CourseID, record.TeacherID, record.Date, record.CreatedAt); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// UpdateTeacher changes who recorded the attendance.
func (r *AttendanceRepository) UpdateTeacher(ctx context.Context, id int64, teacherID *int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE attendance SET teacher_id = $2 WHERE id = $1`, id, teacherID); err != nil {
		return fmt.Errorf("update attendance teacher: %w", err)
	}
	return nil
}

// ReplaceStudents overwrites the present set of a record.
func (r *AttendanceRepository) ReplaceStudents(ctx context.Context, attendanceID int64, studentIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attendance_students WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("clear attendance students: %w", err)
	}
	if len(studentIDs) == 0 {
		return nil
	}
	const query = `INSERT INTO attendance_students (attendance_id, student_id) SELECT $1, UNNEST($2::bigint[])`
	if _, err := r.db.ExecContext(ctx, query, attendanceID, pq.Array(studentIDs)); err != nil {
		return fmt.Errorf("insert attendance students: %w", err)
	}
	return nil
}

// ListByCourse returns every record of a course, newest date first.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Attendance, error) {
	query := selectAttendance + ` WHERE a.course_id = $1 GROUP BY a.id ORDER BY a.date DESC`
	return r.list(ctx, query, courseID)
}

// ListByCourseAndStudent returns the records of a course where the student was present.
func (r *AttendanceRepository) ListByCourseAndStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error) {
	query := selectAttendance + ` WHERE a.course_id = $1
        AND EXISTS (SELECT 1 FROM attendance_students p WHERE p.attendance_id = a.id AND p.student_id = $2)
        GROUP BY a.id ORDER BY a.date DESC`
	return r.list(ctx, query, courseID, studentID)
}

func (r *AttendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Attendance, error) {
	var rows []attendanceRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	records := make([]models.Attendance, 0, len(rows))
	for _, row := range rows {
		record := row.Attendance
		record.StudentIDs = []int64(row.Students)
		records = append(records, record)
	}
	return records, nil
}

// RemoveStudentFromCourse drops the student from every present set of the course.
func (r *AttendanceRepository) RemoveStudentFromCourse(ctx context.Context, courseID, studentID int64) error {
	const query = `DELETE FROM attendance_students WHERE student_id = $2
        AND attendance_id IN (SELECT id FROM attendance WHERE course_id = $1)`
	if _, err := r.db.ExecContext(ctx, query, courseID, studentID); err != nil {
		return fmt.Errorf("remove student attendance: %w", err)
	}
	return nil
}

// DeleteByCourse removes every record of a course together with its present sets.
func (r *AttendanceRepository) DeleteByCourse(ctx context.Context, courseID int64) error {
	const links = `DELETE FROM attendance_students WHERE attendance_id IN (SELECT id FROM attendance WHERE course_id = $1)`
	if _, err := r.db.ExecContext(ctx, links, courseID); err != nil {
		return fmt.Errorf("delete attendance students: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
