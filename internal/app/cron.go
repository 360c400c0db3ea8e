package app

import (
	"context"
	"time"

	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/modules/media"
	pkgcron "github.com/triponation/core/internal/pkg/cron"
)

// registerCronJobs wires the background maintenance jobs into the scheduler.
func registerCronJobs(sched *pkgcron.Scheduler, mediaSvc *media.Service, cfg *config.AppConfig) {
	maxAge := cfg.Cron.OrphanMaxAge()

	sched.Register(pkgcron.Job{
		Name:     "sweep_orphan_media",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			_, err := mediaSvc.SweepOrphans(ctx, maxAge)
			return err
		},
	})
}
