package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store groups every relational repository over one connection or one transaction.
type Store struct {
	db *sqlx.DB

	Accounts     *AccountRepository
	Transactions *TransactionRepository
	Students     *StudentRepository
	Teachers     *TeacherRepository
	Courses      *CourseRepository
	Attendance   *AttendanceRepository
	Classrooms   *ClassroomRepository
	Users        *UserRepository
	Addresses    *AddressRepository
	Notices      *NoticeRepository
	Enquiries    *EnquiryRepository
	Gallery      *GalleryRepository
}

// NewStore builds a store bound to the connection pool.
func NewStore(db *sqlx.DB) *Store {
	s := newStore(db)
	s.db = db
	return s
}

func newStore(ext sqlx.ExtContext) *Store {
	return &Store{
		Accounts:     &AccountRepository{db: ext},
		Transactions: &TransactionRepository{db: ext},
		Students:     &StudentRepository{db: ext},
		Teachers:     &TeacherRepository{db: ext},
		Courses:      &CourseRepository{db: ext},
		Attendance:   &AttendanceRepository{db: ext},
		Classrooms:   &ClassroomRepository{db: ext},
		Users:        &UserRepository{db: ext},
		Addresses:    &AddressRepository{db: ext},
		Notices:      &NoticeRepository{db: ext},
		Enquiries:    &EnquiryRepository{db: ext},
		Gallery:      &GalleryRepository{db: ext},
	}
}

// WithinTx runs fn against a store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Calling WithinTx on a store that is already transactional runs fn in the same transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newStore(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func paginate(page, size int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return size, (page - 1) * size
}
