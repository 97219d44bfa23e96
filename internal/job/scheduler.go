// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"arena-feed-service/pkg/locker"
)

// Config holds scheduler configuration.
type Config struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// scheduler runs a job on a fixed interval under a distributed lock so
// only one instance in the fleet executes each tick.
//
// Locking behavior (cooldown model):
//   - Lock TTL = interval; a successful run leaves the lock to expire
//     naturally, suppressing duplicate runs for the whole interval.
//   - A failed run releases the lock immediately so another instance
//     can retry without waiting out the cooldown.
type scheduler struct {
	name     string
	lockKey  string
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	// execute runs one job tick and reports whether it succeeded.
	execute func(ctx context.Context) bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start begins the background job loop.
func (s *scheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting scheduler",
		zap.String("job", s.name),
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler and waits for an in-flight run.
func (s *scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped", zap.String("job", s.name))
}

func (s *scheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.tick()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *scheduler) tick() {
	acquired, err := s.locker.Acquire(s.ctx, s.lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock",
			zap.String("job", s.name),
			zap.Error(err),
		)

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running the job, skipping",
			zap.String("job", s.name),
		)

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if ok := s.execute(ctx); ok {
		// Lock expires naturally after the interval (cooldown)
		return
	}

	if err := s.locker.Release(s.ctx, s.lockKey); err != nil {
		s.logger.Error("failed to release lock after job error",
			zap.String("job", s.name),
			zap.Error(err),
		)
	}
}
