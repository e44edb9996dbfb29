package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type noticeService interface {
	List(ctx context.Context, page, size int) ([]models.Notice, *models.Pagination, error)
	Publish(ctx context.Context, req models.CreateNoticeRequest, image []byte) (*models.Notice, error)
	Delete(ctx context.Context, id int64) error
}

// NoticeHandler serves the notice board.
type NoticeHandler struct {
	notices noticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices noticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// List godoc
// @Summary List notices, newest first
// @Tags Notices
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	page, size := pageOf(c)
	notices, pagination, err := h.notices.List(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices, pagination)
}

// Create godoc
// @Summary Publish a notice
// @Tags Notices
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param image formData file false "Image"
// @Success 201 {object} response.Envelope
// @Router /notices [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	var req models.CreateNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IssuedBy = recorderOf(c)
	image, err := formFile(c, "image", false)
	if err != nil {
		response.Error(c, err)
		return
	}
	notice, err := h.notices.Publish(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// Delete godoc
// @Summary Delete a notice
// @Tags Notices
// @Param id path int true "Notice ID"
// @Success 204
// @Router /notices/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.notices.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
