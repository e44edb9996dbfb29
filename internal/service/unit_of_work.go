package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/internal/repository"
)

type accountRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Account, error)
	FindByStudentID(ctx context.Context, studentID int64) (*models.Account, error)
	FindByTeacherID(ctx context.Context, teacherID int64) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.AccountFilter) ([]models.Account, int, error)
}

type transactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error)
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, int, error)
	DeleteByAccount(ctx context.Context, accountID int64) error
}

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Student, error)
	NextRegistrationNo(ctx context.Context) (int, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateRollNo(ctx context.Context, id int64, rollNo int) error
	Update(ctx context.Context, student *models.Student) error
	ClearAddress(ctx context.Context, id int64) error
	UpdateImage(ctx context.Context, id int64, url, publicID string) error
	ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	UpdateImage(ctx context.Context, id int64, url, publicID string) error
	ClearAddress(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type courseRepository interface {
	FindByID(ctx context.Context, id int64) (*models.CourseDetail, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	UpdateImage(ctx context.Context, id int64, url, publicID string) error
	SetTeacher(ctx context.Context, courseID int64, teacherID *int64) error
	ListIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error)
	AddStudent(ctx context.Context, courseID, studentID int64) error
	HasStudent(ctx context.Context, courseID, studentID int64) (bool, error)
	RemoveStudent(ctx context.Context, courseID, studentID int64) error
	RemoveAllStudents(ctx context.Context, courseID int64) error
	ListStudents(ctx context.Context, courseID int64) ([]models.CourseStudent, error)
	ListStudentIDs(ctx context.Context, courseID int64) ([]int64, error)
	MaxRollNo(ctx context.Context, courseID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type attendanceRepository interface {
	FindByCourseAndDate(ctx context.Context, courseID int64, date time.Time) (*models.Attendance, error)
	Create(ctx context.Context, record *models.Attendance) error
	UpdateTeacher(ctx context.Context, id int64, teacherID *int64) error
	ReplaceStudents(ctx context.Context, attendanceID int64, studentIDs []int64) error
	ListByCourse(ctx context.Context, courseID int64) ([]models.Attendance, error)
	ListByCourseAndStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error)
	RemoveStudentFromCourse(ctx context.Context, courseID, studentID int64) error
	DeleteByCourse(ctx context.Context, courseID int64) error
}

type classroomRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Classroom, error)
	FindByCourse(ctx context.Context, courseID int64) (*models.Classroom, error)
	Create(ctx context.Context, room *models.Classroom) error
	CreateClassWork(ctx context.Context, work *models.ClassWork) error
	FindClassWork(ctx context.Context, id int64) (*models.ClassWork, error)
	ListClassWorks(ctx context.Context, classroomID int64) ([]models.ClassWork, error)
	ListReferenceIDs(ctx context.Context, courseID int64) ([]string, error)
	DeleteClassWork(ctx context.Context, id int64) error
	CreateWork(ctx context.Context, work *models.Work) error
	FindWork(ctx context.Context, id int64) (*models.Work, error)
	UpdateMarks(ctx context.Context, id int64, marks decimal.Decimal) error
	ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error)
	DeleteWorksByStudent(ctx context.Context, courseID, studentID int64) error
	DeleteByCourse(ctx context.Context, courseID int64) error
}

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	DetachStudent(ctx context.Context, studentID int64) error
	DetachTeacher(ctx context.Context, teacherID int64) error
}

type addressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id int64) error
}

type noticeRepository interface {
	List(ctx context.Context, page, size int) ([]models.Notice, int, error)
	FindByID(ctx context.Context, id int64) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}

type enquiryRepository interface {
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error)
	FindByID(ctx context.Context, id int64) (*models.Enquiry, error)
	Create(ctx context.Context, enquiry *models.Enquiry) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type galleryRepository interface {
	List(ctx context.Context, page, size int) ([]models.GalleryItem, int, error)
	FindByID(ctx context.Context, id int64) (*models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id int64) error
}

// Repos is the set of repositories bound to one connection or one transaction.
type Repos struct {
	Accounts     accountRepository
	Transactions transactionRepository
	Students     studentRepository
	Teachers     teacherRepository
	Courses      courseRepository
	Attendance   attendanceRepository
	Classrooms   classroomRepository
	Users        userRepository
	Addresses    addressRepository
	Notices      noticeRepository
	Enquiries    enquiryRepository
	Gallery      galleryRepository
}

// UnitOfWork hands out repositories and runs functions inside one atomic transaction.
type UnitOfWork interface {
	Repos() Repos
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

type sqlUnitOfWork struct {
	store *repository.Store
}

// NewSQLUnitOfWork adapts a repository store to UnitOfWork.
func NewSQLUnitOfWork(store *repository.Store) UnitOfWork {
	return &sqlUnitOfWork{store: store}
}

func (u *sqlUnitOfWork) Repos() Repos {
	return reposOf(u.store)
}

func (u *sqlUnitOfWork) WithinTx(ctx context.Context, fn func(Repos) error) error {
	return u.store.WithinTx(ctx, func(tx *repository.Store) error {
		return fn(reposOf(tx))
	})
}

func reposOf(s *repository.Store) Repos {
	return Repos{
		Accounts:     s.Accounts,
		Transactions: s.Transactions,
		Students:     s.Students,
		Teachers:     s.Teachers,
		Courses:      s.Courses,
		Attendance:   s.Attendance,
		Classrooms:   s.Classrooms,
		Users:        s.Users,
		Addresses:    s.Addresses,
		Notices:      s.Notices,
		Enquiries:    s.Enquiries,
		Gallery:      s.Gallery,
	}
}
