package jobs

import (
	"context"
	"time"

	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/internal/screening"
	"github.com/finscope/finscope/pkg/logger"
)

// RefreshJob warms the fundamentals cache for the screening universe so
// the first interactive screening pass of the day serves from cache.
type RefreshJob struct {
	provider provider.DataProvider
	universe screening.Universe
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates a cache refresh job.
func NewRefreshJob(p provider.DataProvider, universe screening.Universe, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		provider: p,
		universe: universe,
		schedule: schedule,
		logger:   log.WithField("job", "cache_refresh"),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "cache_refresh"
}

// Schedule returns the cron schedule expression
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run fetches fundamentals for every universe symbol sequentially. Per-
// symbol failures are logged and skipped; the warm-up is best-effort.
func (j *RefreshJob) Run(ctx context.Context) error {
	start := time.Now()
	warmed := 0
	failed := 0

	for _, entry := range j.universe {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := j.provider.Fundamentals(ctx, entry.Symbol); err != nil {
			failed++
			j.logger.WithError(err).WithField("symbol", entry.Symbol).Debug("Warm-up fetch failed")
			continue
		}
		warmed++
	}

	j.logger.WithFields(map[string]interface{}{
		"warmed":   warmed,
		"failed":   failed,
		"duration": time.Since(start),
	}).Info("Cache refresh completed")

	return nil
}
