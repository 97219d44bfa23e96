package job

import (
	"context"

	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/pkg/locker"
)

// SyncScheduler runs periodic highlight ingestion across all providers.
type SyncScheduler struct {
	*scheduler
}

// NewSyncScheduler creates a new SyncScheduler with distributed locking
// support.
func NewSyncScheduler(
	syncSvc *service.HighlightSyncService,
	cfg Config,
	logger *zap.Logger,
	lkr locker.DistributedLocker,
) *SyncScheduler {
	s := &scheduler{
		name:     "highlight_sync",
		lockKey:  "jobs:highlight-sync:lock",
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   lkr,
	}

	s.execute = func(ctx context.Context) bool {
		results := syncSvc.SyncAll(ctx)

		totalSynced := 0
		failed := 0
		for _, r := range results {
			if r.Error != nil {
				failed++
				logger.Warn("provider sync failed",
					zap.String("provider", r.Provider),
					zap.Error(r.Error),
				)
			} else {
				totalSynced += r.Count
			}
		}

		logger.Info("sync run finished",
			zap.Int("total_synced", totalSynced),
			zap.Int("providers_failed", failed),
		)

		return failed == 0
	}

	return &SyncScheduler{scheduler: s}
}
