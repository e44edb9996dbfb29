package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/middleware"
	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

type accountStub struct {
	detail    *models.AccountDetail
	statement *models.Statement
	format    string
	applied   models.ApplyTransactionRequest
	err       error
}

func (s *accountStub) List(ctx context.Context, filter models.AccountFilter) ([]models.Account, *models.Pagination, error) {
	return []models.Account{s.detail.Account}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, nil
}

func (s *accountStub) Get(ctx context.Context, id int64) (*models.AccountDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *accountStub) ForOwner(ctx context.Context, ownerType models.OwnerType, ownerID int64) (*models.AccountDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	detail := *s.detail
	detail.OwnerType = ownerType
	if ownerType == models.OwnerStudent {
		detail.StudentID = &ownerID
	} else {
		detail.TeacherID = &ownerID
	}
	return &detail, nil
}

func (s *accountStub) Reconcile(ctx context.Context, id int64) (*models.Reconciliation, error) {
	return &models.Reconciliation{AccountID: id, Balance: s.detail.Balance, Replayed: s.detail.Balance, Consistent: true}, nil
}

func (s *accountStub) Statement(ctx context.Context, id int64, format string) (*models.Statement, error) {
	s.format = format
	if s.err != nil {
		return nil, s.err
	}
	return s.statement, nil
}

func (s *accountStub) ApplyTransaction(ctx context.Context, accountID int64, req models.ApplyTransactionRequest) (*models.Transaction, error) {
	s.applied = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Transaction{ID: 9, AccountID: accountID, Type: req.Type, Amount: req.Amount, Balance: req.Amount}, nil
}

type studentStub struct {
	image     []byte
	deleted   int64
	updated   models.UpdateStudentRequest
	enrollErr error
}

func (s *studentStub) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	return nil, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (s *studentStub) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if id == 404 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &models.StudentDetail{Student: models.Student{ID: id, Name: "Ana"}, CourseIDs: []int64{}}, nil
}

func (s *studentStub) Create(ctx context.Context, req models.CreateStudentRequest) (*models.StudentDetail, error) {
	return &models.StudentDetail{Student: models.Student{ID: 1, Name: req.Name, RegistrationNo: 1}, CourseIDs: []int64{}}, nil
}

func (s *studentStub) Update(ctx context.Context, id int64, req models.UpdateStudentRequest) (*models.StudentDetail, error) {
	s.updated = req
	return &models.StudentDetail{Student: models.Student{ID: id}, CourseIDs: []int64{}}, nil
}

func (s *studentStub) UpdateImage(ctx context.Context, id int64, data []byte) (*models.StudentDetail, error) {
	s.image = data
	return &models.StudentDetail{Student: models.Student{ID: id, ProfileImageURL: "http://media.test/students/a.png"}}, nil
}

func (s *studentStub) DeleteStudent(ctx context.Context, id int64) error {
	s.deleted = id
	return nil
}

func (s *studentStub) Enroll(ctx context.Context, studentID, courseID int64) (*models.EnrollmentResult, error) {
	if s.enrollErr != nil {
		return nil, s.enrollErr
	}
	return &models.EnrollmentResult{StudentID: studentID, CourseID: courseID, RollNo: 1}, nil
}

func (s *studentStub) ForStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error) {
	return []models.Attendance{{CourseID: courseID, StudentIDs: []int64{studentID}}}, nil
}

type teacherStub struct{}

func (teacherStub) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, *models.Pagination, error) {
	return nil, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (teacherStub) Get(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	return &models.TeacherDetail{Teacher: models.Teacher{ID: id}}, nil
}

func (teacherStub) Create(ctx context.Context, req models.CreateTeacherRequest) (*models.TeacherDetail, error) {
	return &models.TeacherDetail{Teacher: models.Teacher{ID: 1, Name: req.Name}}, nil
}

func (teacherStub) ListCourses(ctx context.Context, id int64, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	return []models.CourseDetail{{Course: models.Course{ID: 3, TeacherID: &id}}}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, nil
}

func (teacherStub) Update(ctx context.Context, id int64, req models.UpdateTeacherRequest) (*models.TeacherDetail, error) {
	detail := &models.TeacherDetail{Teacher: models.Teacher{ID: id}}
	if req.Name != nil {
		detail.Name = *req.Name
	}
	return detail, nil
}

func (teacherStub) UpdateImage(ctx context.Context, id int64, data []byte) (*models.TeacherDetail, error) {
	return &models.TeacherDetail{Teacher: models.Teacher{ID: id}}, nil
}

func (teacherStub) DeleteTeacher(ctx context.Context, id int64) error { return nil }

type courseStub struct {
	reference []byte
	posted    models.PostClassWorkRequest
	marked    models.MarkAttendanceRequest
}

func (s *courseStub) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	return nil, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (s *courseStub) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	return &models.CourseDetail{Course: models.Course{ID: id, Fees: "500"}}, nil
}

func (s *courseStub) Create(ctx context.Context, req models.CreateCourseRequest) (*models.CourseDetail, error) {
	return &models.CourseDetail{Course: models.Course{ID: 1, Name: req.Name, Fees: req.Fees}}, nil
}

func (s *courseStub) Update(ctx context.Context, id int64, req models.UpdateCourseRequest) (*models.CourseDetail, error) {
	return &models.CourseDetail{Course: models.Course{ID: id}}, nil
}

func (s *courseStub) ListStudents(ctx context.Context, id int64) ([]models.CourseStudent, error) {
	return []models.CourseStudent{{StudentID: 1, RollNo: 1}}, nil
}

func (s *courseStub) UpdateImage(ctx context.Context, id int64, data []byte) (*models.CourseDetail, error) {
	return &models.CourseDetail{Course: models.Course{ID: id}}, nil
}

func (s *courseStub) DeleteCourse(ctx context.Context, id int64) error { return nil }

func (s *courseStub) Assign(ctx context.Context, courseID, teacherID int64) (*models.AssignmentResult, error) {
	return &models.AssignmentResult{CourseID: courseID, TeacherID: teacherID}, nil
}

func (s *courseStub) Mark(ctx context.Context, courseID int64, req models.MarkAttendanceRequest) (*models.Attendance, error) {
	s.marked = req
	return &models.Attendance{ID: 1, CourseID: courseID, StudentIDs: req.StudentIDs}, nil
}

func (s *courseStub) ForCourse(ctx context.Context, courseID int64) ([]models.Attendance, error) {
	return nil, nil
}

func (s *courseStub) PostClassWork(ctx context.Context, courseID int64, req models.PostClassWorkRequest, reference []byte) (*models.ClassWork, error) {
	s.posted = req
	s.reference = reference
	return &models.ClassWork{ID: 5, Title: req.Title, TotalMarks: req.TotalMarks}, nil
}

func (s *courseStub) ListClassWork(ctx context.Context, courseID int64) ([]models.ClassWork, error) {
	return []models.ClassWork{}, nil
}

type workStub struct {
	submitted   models.SubmitWorkRequest
	submittedBy int64
	graded      models.GradeWorkRequest
	grader      *int64
}

func (s *workStub) SubmitWork(ctx context.Context, classWorkID, studentID int64, req models.SubmitWorkRequest) (*models.Work, error) {
	s.submitted = req
	s.submittedBy = studentID
	if classWorkID == 404 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classwork not found")
	}
	return &models.Work{ID: 1, ClassWorkID: classWorkID, StudentID: studentID, Content: req.Content, Marks: decimal.Zero}, nil
}

func (s *workStub) GradeWork(ctx context.Context, workID int64, grader *int64, req models.GradeWorkRequest) (*models.Work, error) {
	s.graded = req
	s.grader = grader
	if req.Marks.GreaterThan(decimal.NewFromInt(100)) {
		return nil, appErrors.Clone(appErrors.ErrInvalidData, "marks exceed total marks")
	}
	return &models.Work{ID: workID, Marks: req.Marks}, nil
}

func (s *workStub) ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error) {
	return []models.Work{}, nil
}

func (s *workStub) DeleteClassWork(ctx context.Context, classWorkID int64) error {
	if classWorkID == 404 {
		return appErrors.Clone(appErrors.ErrNotFound, "classwork not found")
	}
	return nil
}

type noticeStub struct {
	published models.CreateNoticeRequest
	image     []byte
	deleted   int64
}

func (s *noticeStub) List(ctx context.Context, page, size int) ([]models.Notice, *models.Pagination, error) {
	return []models.Notice{{ID: 2, Title: "Sports day"}}, &models.Pagination{Page: page, PageSize: size, TotalCount: 1}, nil
}

func (s *noticeStub) Publish(ctx context.Context, req models.CreateNoticeRequest, image []byte) (*models.Notice, error) {
	s.published = req
	s.image = image
	return &models.Notice{ID: 3, Title: req.Title, IssuedBy: req.IssuedBy}, nil
}

func (s *noticeStub) Delete(ctx context.Context, id int64) error {
	s.deleted = id
	return nil
}

type galleryStub struct {
	added models.CreateGalleryItemRequest
	image []byte
}

func (s *galleryStub) List(ctx context.Context, page, size int) ([]models.GalleryItem, *models.Pagination, error) {
	return []models.GalleryItem{{ID: 1, About: "Annual day"}}, &models.Pagination{Page: page, PageSize: size, TotalCount: 1}, nil
}

func (s *galleryStub) Add(ctx context.Context, req models.CreateGalleryItemRequest, image []byte) (*models.GalleryItem, error) {
	s.added = req
	s.image = image
	return &models.GalleryItem{ID: 4, About: req.About}, nil
}

func (s *galleryStub) Delete(ctx context.Context, id int64) error {
	if id == 404 {
		return appErrors.Clone(appErrors.ErrNotFound, "gallery item not found")
	}
	return nil
}

type enquiryStub struct {
	submitted models.CreateEnquiryRequest
	filter    models.EnquiryFilter
	responded int64
}

func (s *enquiryStub) Submit(ctx context.Context, req models.CreateEnquiryRequest) (*models.Enquiry, error) {
	s.submitted = req
	return &models.Enquiry{ID: 8, Name: req.Name, Status: models.EnquiryStatusNew}, nil
}

func (s *enquiryStub) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, *models.Pagination, error) {
	s.filter = filter
	if filter.Status == "BOGUS" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown enquiry status")
	}
	return []models.Enquiry{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *enquiryStub) MarkResponded(ctx context.Context, id int64) (*models.Enquiry, error) {
	s.responded = id
	return &models.Enquiry{ID: id, Status: models.EnquiryStatusResponded}, nil
}

func (s *enquiryStub) Delete(ctx context.Context, id int64) error { return nil }

// principalStub derives the principal from test user ids of the form "student:1" or "teacher:3".
type principalStub struct{}

func (principalStub) Resolve(ctx context.Context, claims *models.JWTClaims) (*models.Principal, error) {
	principal := &models.Principal{UserID: 1, Role: claims.Role}
	kind, raw, found := strings.Cut(claims.UserID, ":")
	if !found {
		return principal, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid test user")
	}
	switch kind {
	case "student":
		principal.StudentID = &id
	case "teacher":
		principal.TeacherID = &id
	}
	return principal, nil
}

type testAPI struct {
	router   *gin.Engine
	accounts *accountStub
	students *studentStub
	courses  *courseStub
	works    *workStub
	notices  *noticeStub
	gallery  *galleryStub
	enquiry  *enquiryStub
}

func newTestAPI() *testAPI {
	gin.SetMode(gin.TestMode)
	api := &testAPI{
		accounts: &accountStub{detail: &models.AccountDetail{Account: models.Account{ID: 1, Balance: decimal.RequireFromString("-70")}}},
		students: &studentStub{},
		courses:  &courseStub{},
		works:    &workStub{},
		notices:  &noticeStub{},
		gallery:  &galleryStub{},
		enquiry:  &enquiryStub{},
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			userID := c.GetHeader("X-Test-User")
			if userID == "" {
				userID = "test-user"
			}
			c.Set(middleware.ContextUserKey, &models.JWTClaims{
				UserID:   userID,
				FullName: "Test Admin",
				Role:     models.UserRole(role),
			})
		}
		c.Next()
	})
	handlers := Handlers{
		Accounts:  NewAccountHandler(api.accounts, api.accounts),
		Students:  NewStudentHandler(api.students, api.students, api.students, api.students),
		Teachers:  NewTeacherHandler(teacherStub{}, teacherStub{}),
		Courses:   NewCourseHandler(api.courses, api.courses, api.courses, api.courses, api.courses),
		ClassWork: NewClassWorkHandler(api.works),
		Me:        NewMeHandler(api.students, teacherStub{}, api.accounts),
		Notices:   NewNoticeHandler(api.notices),
		Enquiries: NewEnquiryHandler(api.enquiry),
		Gallery:   NewGalleryHandler(api.gallery),
	}
	router.Use(middleware.Identity(principalStub{}))
	RegisterRoutes(router.Group("/api/v1"), handlers)
	RegisterPublicRoutes(router.Group("/api/v1/public"), handlers)
	api.router = router
	return api
}

func (a *testAPI) do(req *http.Request, role models.UserRole) *httptest.ResponseRecorder {
	return a.doAs(req, role, "")
}

// doAs sends the request as the given test user, e.g. "student:1".
func (a *testAPI) doAs(req *http.Request, role models.UserRole, user string) *httptest.ResponseRecorder {
	if role != "" {
		req.Header.Set("X-Test-Role", string(role))
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
