package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/service"
)

// unmatchedRoute labels requests that hit no route, so probing clients cannot grow the path label set.
const unmatchedRoute = "unmatched"

// Metrics records method, route template and status of every request.
// Paths listed in skip (health probes, the scrape endpoint) are not recorded.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
