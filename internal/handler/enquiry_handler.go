package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type enquiryService interface {
	Submit(ctx context.Context, req models.CreateEnquiryRequest) (*models.Enquiry, error)
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, *models.Pagination, error)
	MarkResponded(ctx context.Context, id int64) (*models.Enquiry, error)
	Delete(ctx context.Context, id int64) error
}

// EnquiryHandler takes enquiries from visitors and lets staff work through them.
type EnquiryHandler struct {
	enquiries enquiryService
}

// NewEnquiryHandler constructs EnquiryHandler.
func NewEnquiryHandler(enquiries enquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries}
}

// Submit godoc
// @Summary Leave an enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param payload body models.CreateEnquiryRequest true "Enquiry"
// @Success 201 {object} response.Envelope
// @Router /public/enquiries [post]
func (h *EnquiryHandler) Submit(c *gin.Context) {
	var req models.CreateEnquiryRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	enquiry, err := h.enquiries.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// List godoc
// @Summary List enquiries
// @Tags Enquiries
// @Produce json
// @Param status query string false "NEW or RESPONDED"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *gin.Context) {
	filter := models.EnquiryFilter{Status: strings.ToUpper(strings.TrimSpace(c.Query("status")))}
	filter.Page, filter.PageSize = pageOf(c)

	enquiries, pagination, err := h.enquiries.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiries, pagination)
}

// Respond godoc
// @Summary Mark an enquiry as responded
// @Tags Enquiries
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} response.Envelope
// @Router /enquiries/{id}/status [put]
func (h *EnquiryHandler) Respond(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	enquiry, err := h.enquiries.MarkResponded(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiry, nil)
}

// Delete godoc
// @Summary Delete an enquiry
// @Tags Enquiries
// @Param id path int true "Enquiry ID"
// @Success 204
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.enquiries.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
