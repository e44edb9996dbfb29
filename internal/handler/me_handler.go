package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type studentReader interface {
	Get(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type teacherReader interface {
	Get(ctx context.Context, id int64) (*models.TeacherDetail, error)
}

type ownerAccountReader interface {
	ForOwner(ctx context.Context, ownerType models.OwnerType, ownerID int64) (*models.AccountDetail, error)
}

// MeHandler serves the caller's own profile and account.
type MeHandler struct {
	students studentReader
	teachers teacherReader
	accounts ownerAccountReader
}

// NewMeHandler constructs MeHandler.
func NewMeHandler(students studentReader, teachers teacherReader, accounts ownerAccountReader) *MeHandler {
	return &MeHandler{students: students, teachers: teachers, accounts: accounts}
}

// Profile godoc
// @Summary The caller with its student or teacher record
// @Tags Me
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me [get]
func (h *MeHandler) Profile(c *gin.Context) {
	principal := principalFromContext(c)
	profile := models.Profile{Principal: *principal}

	var err error
	switch {
	case principal.StudentID != nil:
		profile.Student, err = h.students.Get(c.Request.Context(), *principal.StudentID)
	case principal.TeacherID != nil:
		profile.Teacher, err = h.teachers.Get(c.Request.Context(), *principal.TeacherID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Account godoc
// @Summary The caller's fee or salary account with its history
// @Tags Me
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/account [get]
func (h *MeHandler) Account(c *gin.Context) {
	principal := principalFromContext(c)

	var (
		detail *models.AccountDetail
		err    error
	)
	switch {
	case principal.StudentID != nil:
		detail, err = h.accounts.ForOwner(c.Request.Context(), models.OwnerStudent, *principal.StudentID)
	case principal.TeacherID != nil:
		detail, err = h.accounts.ForOwner(c.Request.Context(), models.OwnerTeacher, *principal.TeacherID)
	default:
		err = appErrors.Clone(appErrors.ErrNotFound, "caller holds no account")
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
