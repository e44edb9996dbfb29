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

type teacherService interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.TeacherDetail, error)
	Create(ctx context.Context, req models.CreateTeacherRequest) (*models.TeacherDetail, error)
	Update(ctx context.Context, id int64, req models.UpdateTeacherRequest) (*models.TeacherDetail, error)
	ListCourses(ctx context.Context, id int64, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error)
	UpdateImage(ctx context.Context, id int64, data []byte) (*models.TeacherDetail, error)
}

type teacherReaper interface {
	DeleteTeacher(ctx context.Context, id int64) error
}

// TeacherHandler manages teacher records.
type TeacherHandler struct {
	teachers teacherService
	reaper   teacherReaper
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers teacherService, reaper teacherReaper) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, reaper: reaper}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Search by name or email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{Search: strings.TrimSpace(c.Query("search"))}
	filter.Page, filter.PageSize = pageOf(c)

	teachers, pagination, err := h.teachers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Get godoc
// @Summary Get teacher
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Create godoc
// @Summary Create teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body models.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req models.CreateTeacherRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Update godoc
// @Summary Update teacher details
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body models.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [patch]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateTeacherRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Delete godoc
// @Summary Delete teacher and account, unassigning their courses
// @Tags Teachers
// @Param id path int true "Teacher ID"
// @Success 204
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.reaper.DeleteTeacher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateImage godoc
// @Summary Replace the teacher profile image
// @Description Administrators may change any teacher; a teacher only its own.
// @Tags Teachers
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Teacher ID"
// @Param image formData file true "Image"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/image [put]
func (h *TeacherHandler) UpdateImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if principal := principalFromContext(c); !principal.IsAdmin() && !principal.ActsAsTeacher(id) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot change another teacher's image"))
		return
	}
	data, err := formFile(c, "image", true)
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.UpdateImage(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Courses godoc
// @Summary Courses taught by the teacher
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/courses [get]
func (h *TeacherHandler) Courses(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var filter models.CourseFilter
	filter.Page, filter.PageSize = pageOf(c)

	courses, pagination, err := h.teachers.ListCourses(c.Request.Context(), id, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}
