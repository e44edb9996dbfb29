package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type workService interface {
	SubmitWork(ctx context.Context, classWorkID, studentID int64, req models.SubmitWorkRequest) (*models.Work, error)
	GradeWork(ctx context.Context, workID int64, grader *int64, req models.GradeWorkRequest) (*models.Work, error)
	ListWorks(ctx context.Context, classWorkID int64) ([]models.Work, error)
	DeleteClassWork(ctx context.Context, classWorkID int64) error
}

// ClassWorkHandler handles submissions against posted classwork and their grading.
type ClassWorkHandler struct {
	classroom workService
}

// NewClassWorkHandler constructs ClassWorkHandler.
func NewClassWorkHandler(classroom workService) *ClassWorkHandler {
	return &ClassWorkHandler{classroom: classroom}
}

// Submit godoc
// @Summary Submit work for a classwork
// @Description The submitting student is the caller.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path int true "ClassWork ID"
// @Param payload body models.SubmitWorkRequest true "Submission"
// @Success 201 {object} response.Envelope
// @Router /classwork/{id}/works [post]
func (h *ClassWorkHandler) Submit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	principal := principalFromContext(c)
	if principal.StudentID == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "only students submit work"))
		return
	}
	var req models.SubmitWorkRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	work, err := h.classroom.SubmitWork(c.Request.Context(), id, *principal.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, work)
}

// Grade godoc
// @Summary Set the marks of a submission
// @Description Teachers may only grade work in courses they teach.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path int true "Work ID"
// @Param payload body models.GradeWorkRequest true "Marks"
// @Success 200 {object} response.Envelope
// @Router /works/{id}/marks [put]
func (h *ClassWorkHandler) Grade(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var grader *int64
	if principal := principalFromContext(c); !principal.IsAdmin() {
		if principal.TeacherID == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller is not linked to a teacher"))
			return
		}
		grader = principal.TeacherID
	}
	var req models.GradeWorkRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	work, err := h.classroom.GradeWork(c.Request.Context(), id, grader, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, work, nil)
}

// Works godoc
// @Summary Submissions for a classwork
// @Tags Classroom
// @Produce json
// @Param id path int true "ClassWork ID"
// @Success 200 {object} response.Envelope
// @Router /classwork/{id}/works [get]
func (h *ClassWorkHandler) Works(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	works, err := h.classroom.ListWorks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, works, nil)
}

// Delete godoc
// @Summary Delete a classwork with its submissions
// @Tags Classroom
// @Param id path int true "ClassWork ID"
// @Success 204
// @Router /classwork/{id} [delete]
func (h *ClassWorkHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.classroom.DeleteClassWork(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
