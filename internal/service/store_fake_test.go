package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

var errFakeFK = errors.New("foreign key violation")

type fakeState struct {
	nextID       int64
	accounts     map[int64]models.Account
	transactions []models.Transaction
	students     map[int64]models.Student
	teachers     map[int64]models.Teacher
	addresses    map[int64]models.Address
	users        map[int64]models.User
	courses      map[int64]models.Course
	enrollments  map[int64]map[int64]time.Time
	attendance   map[int64]models.Attendance
	classrooms   map[int64]models.Classroom
	classworks   map[int64]models.ClassWork
	works        map[int64]models.Work
	notices      map[int64]models.Notice
	enquiries    map[int64]models.Enquiry
	gallery      map[int64]models.GalleryItem
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		nextID:       s.nextID,
		accounts:     make(map[int64]models.Account, len(s.accounts)),
		transactions: append([]models.Transaction(nil), s.transactions...),
		students:     make(map[int64]models.Student, len(s.students)),
		teachers:     make(map[int64]models.Teacher, len(s.teachers)),
		addresses:    make(map[int64]models.Address, len(s.addresses)),
		users:        make(map[int64]models.User, len(s.users)),
		courses:      make(map[int64]models.Course, len(s.courses)),
		enrollments:  make(map[int64]map[int64]time.Time, len(s.enrollments)),
		attendance:   make(map[int64]models.Attendance, len(s.attendance)),
		classrooms:   make(map[int64]models.Classroom, len(s.classrooms)),
		classworks:   make(map[int64]models.ClassWork, len(s.classworks)),
		works:        make(map[int64]models.Work, len(s.works)),
		notices:      make(map[int64]models.Notice, len(s.notices)),
		enquiries:    make(map[int64]models.Enquiry, len(s.enquiries)),
		gallery:      make(map[int64]models.GalleryItem, len(s.gallery)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.students {
		c.students[k] = v
	}
	for k, v := range s.teachers {
		c.teachers[k] = v
	}
	for k, v := range s.addresses {
		c.addresses[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, members := range s.enrollments {
		copied := make(map[int64]time.Time, len(members))
		for id, at := range members {
			copied[id] = at
		}
		c.enrollments[k] = copied
	}
	for k, v := range s.attendance {
		v.StudentIDs = append([]int64(nil), v.StudentIDs...)
		c.attendance[k] = v
	}
	for k, v := range s.classrooms {
		c.classrooms[k] = v
	}
	for k, v := range s.classworks {
		c.classworks[k] = v
	}
	for k, v := range s.works {
		c.works[k] = v
	}
	for k, v := range s.notices {
		c.notices[k] = v
	}
	for k, v := range s.enquiries {
		c.enquiries[k] = v
	}
	for k, v := range s.gallery {
		c.gallery[k] = v
	}
	return c
}

// fakeDB is an in-memory UnitOfWork. A failed WithinTx restores the state it started from.
type fakeDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	state     *fakeState
	failures  map[string]error
	commitErr error
	commits   int
	rollbacks int
}

func newFakeDB() *fakeDB {
	return &fakeDB{state: (&fakeState{}).clone(), failures: map[string]error{}}
}

func (f *fakeDB) Repos() Repos {
	return Repos{
		Accounts:     fakeAccounts{f},
		Transactions: fakeTransactions{f},
		Students:     fakeStudents{f},
		Teachers:     fakeTeachers{f},
		Courses:      fakeCourses{f},
		Attendance:   fakeAttendance{f},
		Classrooms:   fakeClassrooms{f},
		Users:        fakeUsers{f},
		Addresses:    fakeAddresses{f},
		Notices:      fakeNotices{f},
		Enquiries:    fakeEnquiries{f},
		Gallery:      fakeGallery{f},
	}
}

func (f *fakeDB) WithinTx(ctx context.Context, fn func(Repos) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	snapshot := f.state.clone()
	f.mu.Unlock()

	err := fn(f.Repos())
	if err == nil && f.commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", f.commitErr)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = snapshot
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// failOn makes the named repository call fail with err.
func (f *fakeDB) failOn(call string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[call] = err
}

// lock takes the data lock and returns the injected failure for call, if any.
func (f *fakeDB) lock(call string) error {
	f.mu.Lock()
	return f.failures[call]
}

func (f *fakeDB) id() int64 {
	f.state.nextID++
	return f.state.nextID
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: pqUniqueViolation, Constraint: constraint}
}

// Seed helpers; they bypass failure injection.

func (f *fakeDB) seedStudent(name string, rollNo int) models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := models.Student{ID: f.id(), Name: name, RollNo: rollNo, RegistrationNo: int(f.state.nextID)}
	f.state.students[s.ID] = s
	return s
}

func (f *fakeDB) seedTeacher(name string) models.Teacher {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := models.Teacher{ID: f.id(), Name: name}
	f.state.teachers[t.ID] = t
	return t
}

func (f *fakeDB) seedCourse(name, fees string) models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Course{ID: f.id(), Name: name, Fees: fees}
	f.state.courses[c.ID] = c
	room := models.Classroom{ID: f.id(), CourseID: c.ID}
	f.state.classrooms[room.ID] = room
	return c
}

func (f *fakeDB) seedEnrollment(courseID, studentID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.enrollments[courseID] == nil {
		f.state.enrollments[courseID] = map[int64]time.Time{}
	}
	f.state.enrollments[courseID][studentID] = time.Now()
}

func (f *fakeDB) seedUser(role models.UserRole, studentID, teacherID *int64) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{ID: f.id(), Username: fmt.Sprintf("user%d", f.state.nextID), Role: role, StudentID: studentID, TeacherID: teacherID}
	f.state.users[u.ID] = u
	return u
}

func (f *fakeDB) assignTeacher(courseID, teacherID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.state.courses[courseID]
	c.TeacherID = &teacherID
	f.state.courses[courseID] = c
}

func (f *fakeDB) seedAccount(ownerType models.OwnerType, ownerID int64, balance string) models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := models.Account{ID: f.id(), OwnerType: ownerType, Balance: decimal.RequireFromString(balance)}
	if ownerType == models.OwnerStudent {
		a.StudentID = &ownerID
	} else {
		a.TeacherID = &ownerID
	}
	f.state.accounts[a.ID] = a
	return a
}

func (f *fakeDB) snapshot() *fakeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

func (f *fakeDB) transactionsOf(accountID int64) []models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, txn := range f.state.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out
}

func (f *fakeDB) ownerName(a models.Account) string {
	if a.StudentID != nil {
		return f.state.students[*a.StudentID].Name
	}
	if a.TeacherID != nil {
		return f.state.teachers[*a.TeacherID].Name
	}
	return ""
}

func (f *fakeDB) accountOf(match func(models.Account) bool) (*models.Account, error) {
	for _, a := range f.state.accounts {
		if match(a) {
			a.OwnerName = f.ownerName(a)
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func int64Ptr(v int64) *int64 { return &v }

func sortedIDs(set map[int64]time.Time) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeAccounts struct{ f *fakeDB }

func (r fakeAccounts) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.FindByID"); err != nil {
		return nil, err
	}
	return r.f.accountOf(func(a models.Account) bool { return a.ID == id })
}

func (r fakeAccounts) FindByIDForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	a, ok := r.f.state.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r fakeAccounts) FindByStudentID(ctx context.Context, studentID int64) (*models.Account, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.FindByStudentID"); err != nil {
		return nil, err
	}
	return r.f.accountOf(func(a models.Account) bool { return a.StudentID != nil && *a.StudentID == studentID })
}

func (r fakeAccounts) FindByTeacherID(ctx context.Context, teacherID int64) (*models.Account, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.FindByTeacherID"); err != nil {
		return nil, err
	}
	return r.f.accountOf(func(a models.Account) bool { return a.TeacherID != nil && *a.TeacherID == teacherID })
}

func (r fakeAccounts) Create(ctx context.Context, account *models.Account) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.Create"); err != nil {
		return err
	}
	for _, a := range r.f.state.accounts {
		if account.StudentID != nil && a.StudentID != nil && *a.StudentID == *account.StudentID {
			return uniqueViolation("accounts_student_id_key")
		}
		if account.TeacherID != nil && a.TeacherID != nil && *a.TeacherID == *account.TeacherID {
			return uniqueViolation("accounts_teacher_id_key")
		}
	}
	account.ID = r.f.id()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	stored.OwnerName = ""
	r.f.state.accounts[account.ID] = stored
	return nil
}

func (r fakeAccounts) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.UpdateBalance"); err != nil {
		return err
	}
	a, ok := r.f.state.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Balance = balance
	r.f.state.accounts[id] = a
	return nil
}

func (r fakeAccounts) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.Delete"); err != nil {
		return err
	}
	for _, txn := range r.f.state.transactions {
		if txn.AccountID == id {
			return errFakeFK
		}
	}
	delete(r.f.state.accounts, id)
	return nil
}

func (r fakeAccounts) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Accounts.List"); err != nil {
		return nil, 0, err
	}
	out := []models.Account{}
	for _, a := range r.f.state.accounts {
		a.OwnerName = r.f.ownerName(a)
		if filter.OwnerType != "" && a.OwnerType != filter.OwnerType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.OwnerName), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

type fakeTransactions struct{ f *fakeDB }

func (r fakeTransactions) Create(ctx context.Context, txn *models.Transaction) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Transactions.Create"); err != nil {
		return err
	}
	if _, ok := r.f.state.accounts[txn.AccountID]; !ok {
		return errFakeFK
	}
	txn.ID = r.f.id()
	r.f.state.transactions = append(r.f.state.transactions, *txn)
	return nil
}

func (r fakeTransactions) ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Transactions.ListByAccount"); err != nil {
		return nil, err
	}
	out := []models.Transaction{}
	for _, txn := range r.f.state.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r fakeTransactions) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Transactions.SumByAccount"); err != nil {
		return decimal.Zero, 0, err
	}
	sum, count := decimal.Zero, 0
	for _, txn := range r.f.state.transactions {
		if txn.AccountID == accountID {
			sum = sum.Add(txn.Amount)
			count++
		}
	}
	return sum, count, nil
}

func (r fakeTransactions) DeleteByAccount(ctx context.Context, accountID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Transactions.DeleteByAccount"); err != nil {
		return err
	}
	kept := r.f.state.transactions[:0:0]
	for _, txn := range r.f.state.transactions {
		if txn.AccountID != accountID {
			kept = append(kept, txn)
		}
	}
	r.f.state.transactions = kept
	return nil
}

type fakeStudents struct{ f *fakeDB }

func (r fakeStudents) detail(s models.Student) models.StudentDetail {
	d := models.StudentDetail{Student: s}
	if a, err := r.f.accountOf(func(a models.Account) bool { return a.StudentID != nil && *a.StudentID == s.ID }); err == nil {
		d.AccountID = &a.ID
	}
	return d
}

func (r fakeStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.List"); err != nil {
		return nil, 0, err
	}
	out := []models.StudentDetail{}
	for _, s := range r.f.state.students {
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.CourseID != 0 {
			if _, ok := r.f.state.enrollments[filter.CourseID][s.ID]; !ok {
				continue
			}
		}
		out = append(out, r.detail(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r fakeStudents) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.FindByID"); err != nil {
		return nil, err
	}
	s, ok := r.f.state.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := r.detail(s)
	return &d, nil
}

func (r fakeStudents) FindByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	s, ok := r.f.state.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r fakeStudents) NextRegistrationNo(ctx context.Context) (int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.NextRegistrationNo"); err != nil {
		return 0, err
	}
	highest := 0
	for _, s := range r.f.state.students {
		if s.RegistrationNo > highest {
			highest = s.RegistrationNo
		}
	}
	return highest + 1, nil
}

func (r fakeStudents) Create(ctx context.Context, student *models.Student) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.Create"); err != nil {
		return err
	}
	for _, s := range r.f.state.students {
		if s.RegistrationNo == student.RegistrationNo {
			return uniqueViolation("students_registration_no_key")
		}
	}
	student.ID = r.f.id()
	r.f.state.students[student.ID] = *student
	return nil
}

func (r fakeStudents) UpdateRollNo(ctx context.Context, id int64, rollNo int) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.UpdateRollNo"); err != nil {
		return err
	}
	s := r.f.state.students[id]
	s.RollNo = rollNo
	r.f.state.students[id] = s
	return nil
}

func (r fakeStudents) Update(ctx context.Context, student *models.Student) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.Update"); err != nil {
		return err
	}
	if _, ok := r.f.state.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	r.f.state.students[student.ID] = *student
	return nil
}

func (r fakeStudents) ClearAddress(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.ClearAddress"); err != nil {
		return err
	}
	s := r.f.state.students[id]
	s.AddressID = nil
	r.f.state.students[id] = s
	return nil
}

func (r fakeStudents) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.UpdateImage"); err != nil {
		return err
	}
	s := r.f.state.students[id]
	s.ProfileImageURL, s.ProfileImagePublicID = url, publicID
	r.f.state.students[id] = s
	return nil
}

func (r fakeStudents) ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.ListCourseIDs"); err != nil {
		return nil, err
	}
	ids := []int64{}
	for courseID, members := range r.f.state.enrollments {
		if _, ok := members[studentID]; ok {
			ids = append(ids, courseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r fakeStudents) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Students.Delete"); err != nil {
		return err
	}
	for _, members := range r.f.state.enrollments {
		if _, ok := members[id]; ok {
			return errFakeFK
		}
	}
	for _, a := range r.f.state.accounts {
		if a.StudentID != nil && *a.StudentID == id {
			return errFakeFK
		}
	}
	for _, w := range r.f.state.works {
		if w.StudentID == id {
			return errFakeFK
		}
	}
	for _, rec := range r.f.state.attendance {
		for _, sid := range rec.StudentIDs {
			if sid == id {
				return errFakeFK
			}
		}
	}
	for uid, u := range r.f.state.users {
		if u.StudentID != nil && *u.StudentID == id {
			u.StudentID = nil
			r.f.state.users[uid] = u
		}
	}
	delete(r.f.state.students, id)
	return nil
}

type fakeTeachers struct{ f *fakeDB }

func (r fakeTeachers) detail(t models.Teacher) models.TeacherDetail {
	d := models.TeacherDetail{Teacher: t}
	if a, err := r.f.accountOf(func(a models.Account) bool { return a.TeacherID != nil && *a.TeacherID == t.ID }); err == nil {
		d.AccountID = &a.ID
	}
	return d
}

func (r fakeTeachers) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.List"); err != nil {
		return nil, 0, err
	}
	out := []models.TeacherDetail{}
	for _, t := range r.f.state.teachers {
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, r.detail(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r fakeTeachers) FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.FindByID"); err != nil {
		return nil, err
	}
	t, ok := r.f.state.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := r.detail(t)
	return &d, nil
}

func (r fakeTeachers) FindByIDForUpdate(ctx context.Context, id int64) (*models.Teacher, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	t, ok := r.f.state.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (r fakeTeachers) Create(ctx context.Context, teacher *models.Teacher) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.Create"); err != nil {
		return err
	}
	teacher.ID = r.f.id()
	r.f.state.teachers[teacher.ID] = *teacher
	return nil
}

func (r fakeTeachers) Update(ctx context.Context, teacher *models.Teacher) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.Update"); err != nil {
		return err
	}
	if _, ok := r.f.state.teachers[teacher.ID]; !ok {
		return sql.ErrNoRows
	}
	r.f.state.teachers[teacher.ID] = *teacher
	return nil
}

func (r fakeTeachers) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.UpdateImage"); err != nil {
		return err
	}
	t := r.f.state.teachers[id]
	t.ProfileImageURL, t.ProfileImagePublicID = url, publicID
	r.f.state.teachers[id] = t
	return nil
}

func (r fakeTeachers) ClearAddress(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.ClearAddress"); err != nil {
		return err
	}
	t := r.f.state.teachers[id]
	t.AddressID = nil
	r.f.state.teachers[id] = t
	return nil
}

func (r fakeTeachers) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Teachers.Delete"); err != nil {
		return err
	}
	for _, c := range r.f.state.courses {
		if c.TeacherID != nil && *c.TeacherID == id {
			return errFakeFK
		}
	}
	for _, a := range r.f.state.accounts {
		if a.TeacherID != nil && *a.TeacherID == id {
			return errFakeFK
		}
	}
	for rid, rec := range r.f.state.attendance {
		if rec.TeacherID != nil && *rec.TeacherID == id {
			rec.TeacherID = nil
			r.f.state.attendance[rid] = rec
		}
	}
	for uid, u := range r.f.state.users {
		if u.TeacherID != nil && *u.TeacherID == id {
			u.TeacherID = nil
			r.f.state.users[uid] = u
		}
	}
	delete(r.f.state.teachers, id)
	return nil
}

type fakeCourses struct{ f *fakeDB }

func (r fakeCourses) detail(c models.Course) models.CourseDetail {
	d := models.CourseDetail{Course: c, StudentCount: len(r.f.state.enrollments[c.ID])}
	for _, room := range r.f.state.classrooms {
		if room.CourseID == c.ID {
			d.ClassroomID = int64Ptr(room.ID)
		}
	}
	return d
}

func (r fakeCourses) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.FindByID"); err != nil {
		return nil, err
	}
	c, ok := r.f.state.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := r.detail(c)
	return &d, nil
}

func (r fakeCourses) FindByIDForUpdate(ctx context.Context, id int64) (*models.Course, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	c, ok := r.f.state.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r fakeCourses) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.List"); err != nil {
		return nil, 0, err
	}
	out := []models.CourseDetail{}
	for _, c := range r.f.state.courses {
		if filter.TeacherID != 0 && (c.TeacherID == nil || *c.TeacherID != filter.TeacherID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, r.detail(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r fakeCourses) Create(ctx context.Context, course *models.Course) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.Create"); err != nil {
		return err
	}
	course.ID = r.f.id()
	r.f.state.courses[course.ID] = *course
	return nil
}

func (r fakeCourses) Update(ctx context.Context, course *models.Course) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.Update"); err != nil {
		return err
	}
	r.f.state.courses[course.ID] = *course
	return nil
}

func (r fakeCourses) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.UpdateImage"); err != nil {
		return err
	}
	c := r.f.state.courses[id]
	c.ImageURL, c.ImagePublicID = url, publicID
	r.f.state.courses[id] = c
	return nil
}

func (r fakeCourses) SetTeacher(ctx context.Context, courseID int64, teacherID *int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.SetTeacher"); err != nil {
		return err
	}
	c := r.f.state.courses[courseID]
	c.TeacherID = teacherID
	r.f.state.courses[courseID] = c
	return nil
}

func (r fakeCourses) ListIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.ListIDsByTeacher"); err != nil {
		return nil, err
	}
	ids := []int64{}
	for _, c := range r.f.state.courses {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			ids = append(ids, c.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r fakeCourses) AddStudent(ctx context.Context, courseID, studentID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.AddStudent"); err != nil {
		return err
	}
	if _, ok := r.f.state.enrollments[courseID][studentID]; ok {
		return uniqueViolation("course_students_pkey")
	}
	if r.f.state.enrollments[courseID] == nil {
		r.f.state.enrollments[courseID] = map[int64]time.Time{}
	}
	r.f.state.enrollments[courseID][studentID] = time.Now().UTC()
	return nil
}

func (r fakeCourses) HasStudent(ctx context.Context, courseID, studentID int64) (bool, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.HasStudent"); err != nil {
		return false, err
	}
	_, ok := r.f.state.enrollments[courseID][studentID]
	return ok, nil
}

func (r fakeCourses) RemoveStudent(ctx context.Context, courseID, studentID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.RemoveStudent"); err != nil {
		return err
	}
	delete(r.f.state.enrollments[courseID], studentID)
	return nil
}

func (r fakeCourses) RemoveAllStudents(ctx context.Context, courseID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.RemoveAllStudents"); err != nil {
		return err
	}
	delete(r.f.state.enrollments, courseID)
	return nil
}

func (r fakeCourses) ListStudents(ctx context.Context, courseID int64) ([]models.CourseStudent, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.ListStudents"); err != nil {
		return nil, err
	}
	out := []models.CourseStudent{}
	for _, id := range sortedIDs(r.f.state.enrollments[courseID]) {
		s := r.f.state.students[id]
		out = append(out, models.CourseStudent{
			StudentID:      s.ID,
			Name:           s.Name,
			RollNo:         s.RollNo,
			RegistrationNo: s.RegistrationNo,
			EnrolledAt:     r.f.state.enrollments[courseID][id],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (r fakeCourses) ListStudentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.ListStudentIDs"); err != nil {
		return nil, err
	}
	return sortedIDs(r.f.state.enrollments[courseID]), nil
}

func (r fakeCourses) MaxRollNo(ctx context.Context, courseID int64) (int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.MaxRollNo"); err != nil {
		return 0, err
	}
	highest := 0
	for id := range r.f.state.enrollments[courseID] {
		if roll := r.f.state.students[id].RollNo; roll > highest {
			highest = roll
		}
	}
	return highest, nil
}

func (r fakeCourses) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Courses.Delete"); err != nil {
		return err
	}
	if len(r.f.state.enrollments[id]) > 0 {
		return errFakeFK
	}
	for _, room := range r.f.state.classrooms {
		if room.CourseID == id {
			return errFakeFK
		}
	}
	for _, rec := range r.f.state.attendance {
		if rec.CourseID == id {
			return errFakeFK
		}
	}
	delete(r.f.state.courses, id)
	return nil
}

type fakeAttendance struct{ f *fakeDB }

func (r fakeAttendance) FindByCourseAndDate(ctx context.Context, courseID int64, date time.Time) (*models.Attendance, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.FindByCourseAndDate"); err != nil {
		return nil, err
	}
	for _, rec := range r.f.state.attendance {
		if rec.CourseID == courseID && rec.Date.Equal(date) {
			rec.StudentIDs = append([]int64(nil), rec.StudentIDs...)
			return &rec, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r fakeAttendance) Create(ctx context.Context, record *models.Attendance) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.Create"); err != nil {
		return err
	}
	for _, rec := range r.f.state.attendance {
		if rec.CourseID == record.CourseID && rec.Date.Equal(record.Date) {
			return uniqueViolation("attendance_course_id_date_key")
		}
	}
	record.ID = r.f.id()
	stored := *record
	stored.StudentIDs = nil
	r.f.state.attendance[record.ID] = stored
	return nil
}

func (r fakeAttendance) UpdateTeacher(ctx context.Context, id int64, teacherID *int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.UpdateTeacher"); err != nil {
		return err
	}
	rec := r.f.state.attendance[id]
	rec.TeacherID = teacherID
	r.f.state.attendance[id] = rec
	return nil
}

func (r fakeAttendance) ReplaceStudents(ctx context.Context, attendanceID int64, studentIDs []int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.ReplaceStudents"); err != nil {
		return err
	}
	rec := r.f.state.attendance[attendanceID]
	rec.StudentIDs = append([]int64(nil), studentIDs...)
	r.f.state.attendance[attendanceID] = rec
	return nil
}

func (r fakeAttendance) list(courseID int64, keep func(models.Attendance) bool) []models.Attendance {
	out := []models.Attendance{}
	for _, rec := range r.f.state.attendance {
		if rec.CourseID == courseID && keep(rec) {
			rec.StudentIDs = append([]int64{}, rec.StudentIDs...)
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r fakeAttendance) ListByCourse(ctx context.Context, courseID int64) ([]models.Attendance, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.ListByCourse"); err != nil {
		return nil, err
	}
	return r.list(courseID, func(models.Attendance) bool { return true }), nil
}

func (r fakeAttendance) ListByCourseAndStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.ListByCourseAndStudent"); err != nil {
		return nil, err
	}
	return r.list(courseID, func(rec models.Attendance) bool {
		for _, id := range rec.StudentIDs {
			if id == studentID {
				return true
			}
		}
		return false
	}), nil
}

func (r fakeAttendance) RemoveStudentFromCourse(ctx context.Context, courseID, studentID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.RemoveStudentFromCourse"); err != nil {
		return err
	}
	for id, rec := range r.f.state.attendance {
		if rec.CourseID != courseID {
			continue
		}
		kept := []int64{}
		for _, sid := range rec.StudentIDs {
			if sid != studentID {
				kept = append(kept, sid)
			}
		}
		rec.StudentIDs = kept
		r.f.state.attendance[id] = rec
	}
	return nil
}

func (r fakeAttendance) DeleteByCourse(ctx context.Context, courseID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Attendance.DeleteByCourse"); err != nil {
		return err
	}
	for id, rec := range r.f.state.attendance {
		if rec.CourseID == courseID {
			delete(r.f.state.attendance, id)
		}
	}
	return nil
}

type fakeClassrooms struct{ f *fakeDB }

func (r fakeClassrooms) FindByID(ctx context.Context, id int64) (*models.Classroom, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.FindByID"); err != nil {
		return nil, err
	}
	room, ok := r.f.state.classrooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &room, nil
}

func (r fakeClassrooms) FindByCourse(ctx context.Context, courseID int64) (*models.Classroom, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.FindByCourse"); err != nil {
		return nil, err
	}
	for _, room := range r.f.state.classrooms {
		if room.CourseID == courseID {
			return &room, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r fakeClassrooms) Create(ctx context.Context, room *models.Classroom) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.Create"); err != nil {
		return err
	}
	room.ID = r.f.id()
	r.f.state.classrooms[room.ID] = *room
	return nil
}

func (r fakeClassrooms) CreateClassWork(ctx context.Context, work *models.ClassWork) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.CreateClassWork"); err != nil {
		return err
	}
	work.ID = r.f.id()
	r.f.state.classworks[work.ID] = *work
	return nil
}

func (r fakeClassrooms) FindClassWork(ctx context.Context, id int64) (*models.ClassWork, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.FindClassWork"); err != nil {
		return nil, err
	}
	work, ok := r.f.state.classworks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &work, nil
}

func (r fakeClassrooms) ListClassWorks(ctx context.Context, classroomID int64) ([]models.ClassWork, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.ListClassWorks"); err != nil {
		return nil, err
	}
	out := []models.ClassWork{}
	for _, w := range r.f.state.classworks {
		if w.ClassroomID == classroomID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeClassrooms) ListReferenceIDs(ctx context.Context, courseID int64) ([]string, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.ListReferenceIDs"); err != nil {
		return nil, err
	}
	var works []models.ClassWork
	for _, w := range r.f.state.classworks {
		if r.f.state.classrooms[w.ClassroomID].CourseID == courseID && w.ReferencePublicID != "" {
			works = append(works, w)
		}
	}
	sort.Slice(works, func(i, j int) bool { return works[i].ID < works[j].ID })
	ids := []string{}
	for _, w := range works {
		ids = append(ids, w.ReferencePublicID)
	}
	return ids, nil
}

func (r fakeClassrooms) DeleteClassWork(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.DeleteClassWork"); err != nil {
		return err
	}
	for wid, w := range r.f.state.works {
		if w.ClassWorkID == id {
			delete(r.f.state.works, wid)
		}
	}
	delete(r.f.state.classworks, id)
	return nil
}

func (r fakeClassrooms) CreateWork(ctx context.Context, work *models.Work) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.CreateWork"); err != nil {
		return err
	}
	work.ID = r.f.id()
	work.SubmittedAt = time.Now().UTC()
	r.f.state.works[work.ID] = *work
	return nil
}

func (r fakeClassrooms) FindWork(ctx context.Context, id int64) (*models.Work, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.FindWork"); err != nil {
		return nil, err
	}
	w, ok := r.f.state.works[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &w, nil
}

func (r fakeClassrooms) UpdateMarks(ctx context.Context, id int64, marks decimal.Decimal) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.UpdateMarks"); err != nil {
		return err
	}
	w := r.f.state.works[id]
	w.Marks = marks
	r.f.state.works[id] = w
	return nil
}

func (r fakeClassrooms) ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.ListWorks"); err != nil {
		return nil, err
	}
	out := []models.Work{}
	for _, w := range r.f.state.works {
		if w.ClassWorkID == classWorkID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeClassrooms) courseOfWork(w models.Work) int64 {
	cw := r.f.state.classworks[w.ClassWorkID]
	return r.f.state.classrooms[cw.ClassroomID].CourseID
}

func (r fakeClassrooms) DeleteWorksByStudent(ctx context.Context, courseID, studentID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.DeleteWorksByStudent"); err != nil {
		return err
	}
	for id, w := range r.f.state.works {
		if w.StudentID == studentID && r.courseOfWork(w) == courseID {
			delete(r.f.state.works, id)
		}
	}
	return nil
}

func (r fakeClassrooms) DeleteByCourse(ctx context.Context, courseID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Classrooms.DeleteByCourse"); err != nil {
		return err
	}
	for id, w := range r.f.state.works {
		if r.courseOfWork(w) == courseID {
			delete(r.f.state.works, id)
		}
	}
	for id, cw := range r.f.state.classworks {
		if r.f.state.classrooms[cw.ClassroomID].CourseID == courseID {
			delete(r.f.state.classworks, id)
		}
	}
	for id, room := range r.f.state.classrooms {
		if room.CourseID == courseID {
			delete(r.f.state.classrooms, id)
		}
	}
	return nil
}

type fakeUsers struct{ f *fakeDB }

func (r fakeUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.f.state.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r fakeUsers) DetachStudent(ctx context.Context, studentID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Users.DetachStudent"); err != nil {
		return err
	}
	for id, u := range r.f.state.users {
		if u.StudentID != nil && *u.StudentID == studentID {
			u.StudentID = nil
			r.f.state.users[id] = u
		}
	}
	return nil
}

func (r fakeUsers) DetachTeacher(ctx context.Context, teacherID int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Users.DetachTeacher"); err != nil {
		return err
	}
	for id, u := range r.f.state.users {
		if u.TeacherID != nil && *u.TeacherID == teacherID {
			u.TeacherID = nil
			r.f.state.users[id] = u
		}
	}
	return nil
}

type fakeAddresses struct{ f *fakeDB }

func (r fakeAddresses) Create(ctx context.Context, address *models.Address) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Addresses.Create"); err != nil {
		return err
	}
	address.ID = r.f.id()
	r.f.state.addresses[address.ID] = *address
	return nil
}

func (r fakeAddresses) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Addresses.FindByID"); err != nil {
		return nil, err
	}
	a, ok := r.f.state.addresses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r fakeAddresses) Update(ctx context.Context, address *models.Address) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Addresses.Update"); err != nil {
		return err
	}
	if _, ok := r.f.state.addresses[address.ID]; !ok {
		return sql.ErrNoRows
	}
	r.f.state.addresses[address.ID] = *address
	return nil
}

func (r fakeAddresses) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Addresses.Delete"); err != nil {
		return err
	}
	for _, t := range r.f.state.teachers {
		if t.AddressID != nil && *t.AddressID == id {
			return errFakeFK
		}
	}
	for _, s := range r.f.state.students {
		if s.AddressID != nil && *s.AddressID == id {
			return errFakeFK
		}
	}
	delete(r.f.state.addresses, id)
	return nil
}

type fakeNotices struct{ f *fakeDB }

func (r fakeNotices) List(ctx context.Context, page, size int) ([]models.Notice, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Notices.List"); err != nil {
		return nil, 0, err
	}
	out := []models.Notice{}
	for _, n := range r.f.state.notices {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

func (r fakeNotices) FindByID(ctx context.Context, id int64) (*models.Notice, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Notices.FindByID"); err != nil {
		return nil, err
	}
	n, ok := r.f.state.notices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &n, nil
}

func (r fakeNotices) Create(ctx context.Context, notice *models.Notice) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Notices.Create"); err != nil {
		return err
	}
	notice.ID = r.f.id()
	notice.PublishedAt = time.Now().UTC()
	r.f.state.notices[notice.ID] = *notice
	return nil
}

func (r fakeNotices) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Notices.Delete"); err != nil {
		return err
	}
	delete(r.f.state.notices, id)
	return nil
}

type fakeEnquiries struct{ f *fakeDB }

func (r fakeEnquiries) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Enquiries.List"); err != nil {
		return nil, 0, err
	}
	out := []models.Enquiry{}
	for _, e := range r.f.state.enquiries {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

func (r fakeEnquiries) FindByID(ctx context.Context, id int64) (*models.Enquiry, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Enquiries.FindByID"); err != nil {
		return nil, err
	}
	e, ok := r.f.state.enquiries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r fakeEnquiries) Create(ctx context.Context, enquiry *models.Enquiry) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Enquiries.Create"); err != nil {
		return err
	}
	enquiry.ID = r.f.id()
	enquiry.CreatedAt = time.Now().UTC()
	enquiry.UpdatedAt = enquiry.CreatedAt
	r.f.state.enquiries[enquiry.ID] = *enquiry
	return nil
}

func (r fakeEnquiries) UpdateStatus(ctx context.Context, id int64, status string) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Enquiries.UpdateStatus"); err != nil {
		return err
	}
	e := r.f.state.enquiries[id]
	e.Status = status
	r.f.state.enquiries[id] = e
	return nil
}

func (r fakeEnquiries) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Enquiries.Delete"); err != nil {
		return err
	}
	delete(r.f.state.enquiries, id)
	return nil
}

type fakeGallery struct{ f *fakeDB }

func (r fakeGallery) List(ctx context.Context, page, size int) ([]models.GalleryItem, int, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Gallery.List"); err != nil {
		return nil, 0, err
	}
	out := []models.GalleryItem{}
	for _, item := range r.f.state.gallery {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TakenOn.Equal(out[j].TakenOn) {
			return out[i].ID > out[j].ID
		}
		return out[i].TakenOn.After(out[j].TakenOn)
	})
	return out, len(out), nil
}

func (r fakeGallery) FindByID(ctx context.Context, id int64) (*models.GalleryItem, error) {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Gallery.FindByID"); err != nil {
		return nil, err
	}
	item, ok := r.f.state.gallery[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (r fakeGallery) Create(ctx context.Context, item *models.GalleryItem) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Gallery.Create"); err != nil {
		return err
	}
	item.ID = r.f.id()
	r.f.state.gallery[item.ID] = *item
	return nil
}

func (r fakeGallery) Delete(ctx context.Context, id int64) error {
	defer r.f.mu.Unlock()
	if err := r.f.lock("Gallery.Delete"); err != nil {
		return err
	}
	delete(r.f.state.gallery, id)
	return nil
}

// fakeObjectStore stands in for the object store behind ImageService.
type fakeObjectStore struct {
	mu        sync.Mutex
	seq       int
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (s *fakeObjectStore) Upload(ctx context.Context, folder string, data []byte, filename string) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.seq++
	id := fmt.Sprintf("%s/obj-%d", folder, s.seq)
	s.objects[id] = data
	return &storage.Object{URL: "http://media.test/" + id, PublicID: id, Size: len(data)}, nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeObjectStore) has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[publicID]
	return ok
}

func (s *fakeObjectStore) deletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
