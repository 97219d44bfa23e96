package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"arena-feed-service/internal/domain"
)

// TrendingService recomputes the stored trending_score column. It runs
// from the background scheduler, decoupled from request-time feed
// ranking: the stored score uses the longer 72h half-life and carries
// no viewer affinity.
type TrendingService struct {
	store  domain.IngestStore
	window int
	logger *zap.Logger
}

// NewTrendingService creates a new TrendingService. window caps how
// many recent items are rescored per run.
func NewTrendingService(store domain.IngestStore, window int, logger *zap.Logger) *TrendingService {
	return &TrendingService{
		store:  store,
		window: window,
		logger: logger,
	}
}

// Refresh rescores the candidate window and persists the results.
// Returns the number of items updated.
func (s *TrendingService) Refresh(ctx context.Context) (int, error) {
	start := time.Now()

	candidates, err := s.store.TrendingCandidates(ctx, s.window)
	if err != nil {
		return 0, fmt.Errorf("fetching trending candidates: %w", err)
	}
	if len(candidates) == 0 {
		s.logger.Debug("no trending candidates to rescore")
		return 0, nil
	}

	now := time.Now().UTC()
	updates := make([]domain.TrendingScoreUpdate, len(candidates))
	for i, c := range candidates {
		updates[i] = domain.TrendingScoreUpdate{
			ID:    c.ID,
			Kind:  c.Kind,
			Score: domain.TrendingScore(c.ViewCount, c.LikeCount, c.CommentCount, c.WatchTimeSeconds, c.CreatedAt, now),
		}
	}

	if err := s.store.UpdateTrendingScores(ctx, updates); err != nil {
		return 0, fmt.Errorf("persisting trending scores: %w", err)
	}

	s.logger.Info("trending scores refreshed",
		zap.Int("count", len(updates)),
		zap.Duration("duration", time.Since(start)),
	)

	return len(updates), nil
}
