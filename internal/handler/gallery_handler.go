package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type galleryService interface {
	List(ctx context.Context, page, size int) ([]models.GalleryItem, *models.Pagination, error)
	Add(ctx context.Context, req models.CreateGalleryItemRequest, image []byte) (*models.GalleryItem, error)
	Delete(ctx context.Context, id int64) error
}

// GalleryHandler serves the picture gallery.
type GalleryHandler struct {
	gallery galleryService
}

// NewGalleryHandler constructs GalleryHandler.
func NewGalleryHandler(gallery galleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List godoc
// @Summary List gallery pictures
// @Tags Gallery
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	page, size := pageOf(c)
	items, pagination, err := h.gallery.List(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Add a picture to the gallery
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param about formData string false "Caption"
// @Param taken_on formData string false "Date taken (YYYY-MM-DD)"
// @Param image formData file true "Image"
// @Success 201 {object} response.Envelope
// @Router /gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req models.CreateGalleryItemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	image, err := formFile(c, "image", true)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.gallery.Add(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Remove a gallery picture
// @Tags Gallery
// @Param id path int true "Gallery item ID"
// @Success 204
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.gallery.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
