package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/metrics"
)

// Metrics records request count, latency and in-flight requests labelled
// by route template.
func Metrics(m *metrics.Metrics, skipPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath != "" && c.Request.URL.Path == skipPath {
			c.Next()
			return
		}

		done := m.InFlight()
		start := time.Now()
		c.Next()
		done()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
