package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"arena-feed-service/internal/domain"
)

// HighlightSyncService ingests match highlights from external providers
// into the videos table. Unlike the serving path, partial provider
// failures are allowed here: one broken provider must not block the rest.
type HighlightSyncService struct {
	store     domain.IngestStore
	providers []domain.HighlightProvider
	logger    *zap.Logger
}

// NewHighlightSyncService creates a new HighlightSyncService.
func NewHighlightSyncService(store domain.IngestStore, providers []domain.HighlightProvider, logger *zap.Logger) *HighlightSyncService {
	return &HighlightSyncService{
		store:     store,
		providers: providers,
		logger:    logger,
	}
}

// SyncResult holds the result of a sync operation.
type SyncResult struct {
	Provider string
	Count    int
	Duration time.Duration
	Error    error
}

// SyncAll synchronizes highlights from all providers concurrently.
func (s *HighlightSyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.providers))
	var wg sync.WaitGroup

	s.logger.Info("starting highlight sync",
		zap.Int("provider_count", len(s.providers)),
	)

	for i, provider := range s.providers {
		wg.Add(1)
		go func(idx int, p domain.HighlightProvider) {
			defer wg.Done()
			results[idx] = s.syncProvider(ctx, p)
		}(i, provider)
	}

	wg.Wait()

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		} else {
			totalSynced += r.Count
		}
	}

	s.logger.Info("highlight sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("providers_failed", totalErrors),
	)

	return results
}

// syncProvider fetches and upserts highlights from a single provider.
func (s *HighlightSyncService) syncProvider(ctx context.Context, provider domain.HighlightProvider) SyncResult {
	start := time.Now()
	result := SyncResult{
		Provider: provider.Name(),
	}

	highlights, err := provider.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("provider fetch failed",
			zap.String("provider", provider.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(highlights) > 0 {
		if err := s.store.BulkUpsertHighlights(ctx, highlights); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("highlight upsert failed",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Count = len(highlights)
	result.Duration = time.Since(start)

	s.logger.Info("provider sync completed",
		zap.String("provider", provider.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// SyncProvider synchronizes highlights from a specific provider.
// Returns nil if the provider name is unknown.
func (s *HighlightSyncService) SyncProvider(ctx context.Context, providerName string) (*SyncResult, error) {
	for _, p := range s.providers {
		if p.Name() == providerName {
			result := s.syncProvider(ctx, p)
			return &result, result.Error
		}
	}
	return nil, nil
}

// GetProviderNames returns the names of all registered providers.
func (s *HighlightSyncService) GetProviderNames() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}
