package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/middleware"
	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// maxUploadBytes caps how much of a multipart file is read before the service applies its own limit.
const maxUploadBytes = 32 << 20

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// principalFromContext returns the caller resolved by the identity middleware.
// It is never nil; a request without one gets an empty principal that owns nothing.
func principalFromContext(c *gin.Context) *models.Principal {
	if value, exists := c.Get(middleware.ContextPrincipalKey); exists {
		if principal, ok := value.(*models.Principal); ok && principal != nil {
			return principal
		}
	}
	return &models.Principal{}
}

// recorderOf names the caller for transaction remarks.
func recorderOf(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return ""
	}
	if claims.FullName != "" {
		return claims.FullName
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.UserID
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

func pageOf(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, size
}

func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// formFile reads an uploaded file. A missing optional file yields nil content.
func formFile(c *gin.Context, field string, required bool) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if !required && (errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, field+" file is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "unreadable "+field+" file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidData.Code, appErrors.ErrInvalidData.Status, "unreadable "+field+" file")
	}
	return data, nil
}
