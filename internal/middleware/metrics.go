package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/internal/metrics"
)

// Metrics returns a Gin middleware that records request latency per route
// template. Unmatched paths are recorded under "unmatched".
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
