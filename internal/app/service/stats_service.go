package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"arena-feed-service/internal/domain"
)

// StatsService backs the operator dashboard.
type StatsService struct {
	store  domain.StatsStore
	logger *zap.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(store domain.StatsStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// Overview aggregates the dashboard numbers.
type Overview struct {
	Counts      map[string]int64
	TopTrending []*domain.FeedItem
}

// Overview returns entity counts and the current top trending items.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.store.CountsByKind(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting entities: %w", err)
	}

	top, err := s.store.TopTrending(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("fetching top trending: %w", err)
	}

	s.logger.Debug("dashboard overview assembled",
		zap.Int("trending_count", len(top)),
	)

	return &Overview{
		Counts:      counts,
		TopTrending: top,
	}, nil
}
