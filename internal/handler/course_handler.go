package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.CourseDetail, error)
	Create(ctx context.Context, req models.CreateCourseRequest) (*models.CourseDetail, error)
	Update(ctx context.Context, id int64, req models.UpdateCourseRequest) (*models.CourseDetail, error)
	ListStudents(ctx context.Context, id int64) ([]models.CourseStudent, error)
	UpdateImage(ctx context.Context, id int64, data []byte) (*models.CourseDetail, error)
}

type courseReaper interface {
	DeleteCourse(ctx context.Context, id int64) error
}

type courseAssigner interface {
	Assign(ctx context.Context, courseID, teacherID int64) (*models.AssignmentResult, error)
}

type attendanceService interface {
	Mark(ctx context.Context, courseID int64, req models.MarkAttendanceRequest) (*models.Attendance, error)
	ForCourse(ctx context.Context, courseID int64) ([]models.Attendance, error)
}

type classWorkPoster interface {
	PostClassWork(ctx context.Context, courseID int64, req models.PostClassWorkRequest, reference []byte) (*models.ClassWork, error)
	ListClassWork(ctx context.Context, courseID int64) ([]models.ClassWork, error)
}

// CourseHandler manages courses with their teacher, attendance and classroom.
type CourseHandler struct {
	courses    courseService
	reaper     courseReaper
	assigner   courseAssigner
	attendance attendanceService
	classroom  classWorkPoster
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService, reaper courseReaper, assigner courseAssigner, attendance attendanceService, classroom classWorkPoster) *CourseHandler {
	return &CourseHandler{
		courses:    courses,
		reaper:     reaper,
		assigner:   assigner,
		attendance: attendance,
		classroom:  classroom,
	}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param search query string false "Search by name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{Search: strings.TrimSpace(c.Query("search"))}
	filter.Page, filter.PageSize = pageOf(c)

	courses, pagination, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course and its classroom
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course details
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body models.UpdateCourseRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [patch]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateCourseRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete course with its classroom, attendance and enrollments
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.reaper.DeleteCourse(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateImage godoc
// @Summary Replace the course image
// @Tags Courses
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Course ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/image [put]
func (h *CourseHandler) UpdateImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := formFile(c, "image", true)
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.UpdateImage(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Assign godoc
// @Summary Assign a teacher to the course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/teacher/{teacherId} [put]
func (h *CourseHandler) Assign(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	teacherID, err := pathID(c, "teacherId")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.assigner.Assign(c.Request.Context(), courseID, teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Students godoc
// @Summary Students enrolled in the course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/students [get]
func (h *CourseHandler) Students(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.courses.ListStudents(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// MarkAttendance godoc
// @Summary Record who was present on a date
// @Description A teacher always records as itself; teacher_id is only honoured for administrators.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body models.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/attendance [post]
func (h *CourseHandler) MarkAttendance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.MarkAttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if principal := principalFromContext(c); !principal.IsAdmin() {
		if principal.TeacherID == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller is not linked to a teacher"))
			return
		}
		req.TeacherID = *principal.TeacherID
	}
	record, err := h.attendance.Mark(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Attendance godoc
// @Summary Attendance history of the course
// @Tags Attendance
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/attendance [get]
func (h *CourseHandler) Attendance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.ForCourse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// PostClassWork godoc
// @Summary Post classwork to the course classroom
// @Tags Classroom
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Course ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param total_marks formData int false "Total marks"
// @Param last_date formData string false "Due date (YYYY-MM-DD)"
// @Param reference formData file false "Reference file"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/classwork [post]
func (h *CourseHandler) PostClassWork(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.PostClassWorkRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reference, err := formFile(c, "reference", false)
	if err != nil {
		response.Error(c, err)
		return
	}
	work, err := h.classroom.PostClassWork(c.Request.Context(), id, req, reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, work)
}

// ClassWork godoc
// @Summary Classwork posted to the course classroom
// @Tags Classroom
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/classwork [get]
func (h *CourseHandler) ClassWork(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.classroom.ListClassWork(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
