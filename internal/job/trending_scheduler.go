package job

import (
	"context"

	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/pkg/locker"
)

// TrendingScheduler periodically recomputes stored trending scores so
// the dashboard and any score-ordered reads reflect recent engagement.
type TrendingScheduler struct {
	*scheduler
}

// NewTrendingScheduler creates a new TrendingScheduler with distributed
// locking support.
func NewTrendingScheduler(
	trendingSvc *service.TrendingService,
	cfg Config,
	logger *zap.Logger,
	lkr locker.DistributedLocker,
) *TrendingScheduler {
	s := &scheduler{
		name:     "trending_refresh",
		lockKey:  "jobs:trending-refresh:lock",
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   lkr,
	}

	s.execute = func(ctx context.Context) bool {
		updated, err := trendingSvc.Refresh(ctx)
		if err != nil {
			logger.Error("trending refresh failed", zap.Error(err))

			return false
		}

		logger.Info("trending refresh finished", zap.Int("updated", updated))

		return true
	}

	return &TrendingScheduler{scheduler: s}
}
