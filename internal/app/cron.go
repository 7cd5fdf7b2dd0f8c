package app

import (
	"github.com/legalcurrent/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs(d *deps) {
	if d.importer != nil {
		a.sched.Register(cron.Job{
			Name:        "import_legal_feeds",
			Description: "Import new legal feed items as articles",
			Interval:    a.cfg.Legal.ImportInterval,
			Fn:          d.importer.Run,
		})
	}
}
