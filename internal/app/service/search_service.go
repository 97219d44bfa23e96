package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arena-feed-service/internal/domain"
)

// SearchService blends profile, post and video search results into one
// relevance-ranked, offset-paginated list.
type SearchService struct {
	store  domain.DataStore
	logger *zap.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(store domain.DataStore, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// Search runs the two-phase fetch-then-score search. Category fetches
// are issued jointly; any fetch failure fails the whole request.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchPage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("searching",
		zap.String("query", params.Query),
		zap.String("type", string(params.Type)),
		zap.Int("limit", params.Limit),
		zap.Int("offset", params.Offset),
	)

	cap := params.CategoryCap()

	var profiles, posts, videos []*domain.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	if params.Includes(domain.SearchTypeProfile) {
		g.Go(func() error {
			var err error
			profiles, err = s.store.SearchProfiles(gctx, params.Query, cap)
			if err != nil {
				return fmt.Errorf("searching profiles: %w", err)
			}
			return nil
		})
	}
	if params.Includes(domain.SearchTypePost) {
		g.Go(func() error {
			var err error
			posts, err = s.store.SearchPosts(gctx, params.Query, cap)
			if err != nil {
				return fmt.Errorf("searching posts: %w", err)
			}
			return nil
		})
	}
	if params.Includes(domain.SearchTypeVideo) {
		g.Go(func() error {
			var err error
			videos, err = s.store.SearchVideos(gctx, params.Query, cap)
			if err != nil {
				return fmt.Errorf("searching videos: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("search failed", zap.Error(err))
		return nil, err
	}

	merged := make([]*domain.SearchResult, 0, len(profiles)+len(posts)+len(videos))
	merged = append(merged, profiles...)
	merged = append(merged, posts...)
	merged = append(merged, videos...)

	for _, r := range merged {
		r.RelevanceScore = domain.Relevance(r, params.Query)
	}

	sorted := domain.SortByRelevance(merged)
	page := domain.PaginateResults(sorted, params.Offset, params.Limit)

	s.logger.Debug("search completed",
		zap.Int("total", page.Total),
		zap.Int("returned", len(page.Results)),
	)

	return page, nil
}
