package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.StudentDetail, error)
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.StudentDetail, error)
	Update(ctx context.Context, id int64, req models.UpdateStudentRequest) (*models.StudentDetail, error)
	UpdateImage(ctx context.Context, id int64, data []byte) (*models.StudentDetail, error)
}

type studentReaper interface {
	DeleteStudent(ctx context.Context, id int64) error
}

type enroller interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*models.EnrollmentResult, error)
}

type studentAttendanceReader interface {
	ForStudent(ctx context.Context, courseID, studentID int64) ([]models.Attendance, error)
}

// StudentHandler manages student registration, enrollment and profile images.
type StudentHandler struct {
	students   studentService
	reaper     studentReaper
	enroller   enroller
	attendance studentAttendanceReader
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, reaper studentReaper, enroller enroller, attendance studentAttendanceReader) *StudentHandler {
	return &StudentHandler{students: students, reaper: reaper, enroller: enroller, attendance: attendance}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name or email"
// @Param courseId query int false "Only students enrolled in the course"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("courseId"); raw != "" {
		filter.CourseID, _ = strconv.ParseInt(raw, 10, 64)
	}
	filter.Page, filter.PageSize = pageOf(c)

	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student details
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body models.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateStudentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student with enrollments, account and history
// @Tags Students
// @Param id path int true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.reaper.DeleteStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateImage godoc
// @Summary Replace the student profile image
// @Description Administrators may change any student; a student only its own.
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/image [put]
func (h *StudentHandler) UpdateImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if principal := principalFromContext(c); !principal.IsAdmin() && !principal.ActsAsStudent(id) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot change another student's image"))
		return
	}
	data, err := formFile(c, "image", true)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.UpdateImage(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Enroll godoc
// @Summary Enroll student in a course and charge its fees
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/courses/{courseId} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.enroller.Enroll(c.Request.Context(), studentID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Attendance godoc
// @Summary Attendance records of a course that list the student as present
// @Description Students may only read their own attendance.
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses/{courseId}/attendance [get]
func (h *StudentHandler) Attendance(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if principal := principalFromContext(c); principal.Role == models.RoleStudent && !principal.ActsAsStudent(studentID) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot read another student's attendance"))
		return
	}
	records, err := h.attendance.ForStudent(c.Request.Context(), courseID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
