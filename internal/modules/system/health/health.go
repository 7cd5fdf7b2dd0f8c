package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/cron"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type healthResponse struct {
	Status   string          `json:"status"`
	Database bool            `json:"database"`
	Cache    *bool           `json:"cache,omitempty"`
	Jobs     []cron.ListItem `json:"jobs"`
}

// RegisterRoutes mounts /ping and /health. cachePing may be nil when no
// cache is configured.
func RegisterRoutes(rg *gin.RouterGroup, dbPing, cachePing Pinger, sched *cron.Scheduler) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	rg.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		res := healthResponse{Status: "ok", Jobs: []cron.ListItem{}}
		code := http.StatusOK

		res.Database = dbPing(ctx) == nil
		if !res.Database {
			res.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if cachePing != nil {
			ok := cachePing(ctx) == nil
			res.Cache = &ok
			if !ok {
				// the cache is optional; a miss only degrades the aggregate
				res.Status = "degraded"
			}
		}
		if sched != nil {
			res.Jobs = sched.List()
		}
		c.JSON(code, res)
	})
}
