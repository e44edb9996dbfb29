package handler

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type mediaOpener interface {
	Open(publicID string) (*os.File, error)
}

// SystemHandler serves liveness, readiness and stored media.
type SystemHandler struct {
	checks map[string]Pinger
	media  mediaOpener
	logger *zap.Logger
}

// NewSystemHandler constructs SystemHandler. checks are probed by Ready.
func NewSystemHandler(checks map[string]Pinger, media mediaOpener, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{checks: checks, media: media, logger: logger}
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check.PingContext(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}

// Media serves a stored object by its public id.
func (h *SystemHandler) Media(c *gin.Context) {
	publicID := strings.TrimPrefix(path.Clean("/"+c.Param("path")), "/")
	if publicID == "" || h.media == nil {
		c.Status(http.StatusNotFound)
		return
	}
	file, err := h.media.Open(publicID)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Warn("media open failed", zap.String("public_id", publicID), zap.Error(err))
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	http.ServeContent(c.Writer, c.Request, path.Base(publicID), info.ModTime(), file)
}
