// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arena-feed-service/internal/domain"
)

// FeedService assembles the ranked home feed.
//
// Candidate posts and videos are fetched jointly; if either fetch fails
// the whole request fails, no partial results. Scores are recomputed on
// every call.
type FeedService struct {
	store    domain.DataStore
	cache    domain.Cache // optional viewer-relations cache, may be nil
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewFeedService creates a new FeedService. cache may be nil to disable
// viewer-relations caching.
func NewFeedService(store domain.DataStore, cache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *FeedService {
	return &FeedService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Feed fetches, annotates, scores and paginates the feed for the given
// parameters.
func (s *FeedService) Feed(ctx context.Context, params domain.FeedParams) (*domain.FeedPage, error) {
	params.Normalize()

	s.logger.Debug("assembling feed",
		zap.String("viewer_id", params.ViewerID),
		zap.String("cursor", params.Cursor),
		zap.Int("limit", params.Limit),
		zap.Bool("paginated", params.Paginated),
	)

	var (
		posts     []*domain.FeedItem
		videos    []*domain.FeedItem
		relations *viewerRelations
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.store.QueryPosts(gctx, domain.FeedFetchWindow)
		if err != nil {
			return fmt.Errorf("fetching posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		videos, err = s.store.QueryVideos(gctx, domain.FeedFetchWindow)
		if err != nil {
			return fmt.Errorf("fetching videos: %w", err)
		}
		return nil
	})
	if params.ViewerID != "" {
		g.Go(func() error {
			var err error
			relations, err = s.viewerRelations(gctx, params.ViewerID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("feed assembly failed", zap.Error(err))
		return nil, err
	}

	candidates := make([]*domain.FeedItem, 0, len(posts)+len(videos))
	candidates = append(candidates, posts...)
	candidates = append(candidates, videos...)

	var viewer *domain.ViewerContext
	if params.ViewerID != "" {
		ids := make([]string, len(candidates))
		for i, item := range candidates {
			ids[i] = item.ID
		}
		liked, err := s.store.LikedItems(ctx, params.ViewerID, ids)
		if err != nil {
			s.logger.Error("fetching liked items failed", zap.Error(err))
			return nil, fmt.Errorf("fetching liked items: %w", err)
		}
		viewer = domain.NewViewerContext(params.ViewerID, relations.Following, relations.GamePreferences, liked)
	}

	now := time.Now().UTC()
	for _, item := range candidates {
		item.IsLiked = viewer.HasLiked(item.ID)
		item.IsFollowing = viewer.Follows(item.Author.ID)
		item.RankingScore = domain.RankingScore(item, viewer, now)
	}

	sorted := domain.SortByTrending(candidates)

	var page *domain.FeedPage
	if params.Paginated {
		page = domain.PaginateByPage(sorted, params.Page, params.Limit)
	} else {
		page = domain.PaginateByCursor(sorted, params.Cursor, params.Limit)
	}

	s.logger.Debug("feed assembled",
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(page.Items)),
		zap.Bool("has_more", page.HasMore),
	)

	return page, nil
}

// viewerRelations holds the cacheable part of the viewer context.
// The like-set depends on the candidate window and is never cached.
type viewerRelations struct {
	Following       []string `json:"following"`
	GamePreferences []string `json:"game_preferences"`
}

// viewerRelations loads the viewer's follow list and game preferences,
// jointly, with an optional short-TTL cache in front. Cache failures
// degrade to a store lookup.
func (s *FeedService) viewerRelations(ctx context.Context, userID string) (*viewerRelations, error) {
	key := "viewer:" + userID

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var rel viewerRelations
			if jsonErr := json.Unmarshal(data, &rel); jsonErr == nil {
				return &rel, nil
			}
			s.logger.Warn("discarding malformed viewer cache entry", zap.String("key", key))
		}
	}

	rel := &viewerRelations{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rel.Following, err = s.store.FollowedAuthors(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetching follow list: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rel.GamePreferences, err = s.store.GamePreferences(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetching game preferences: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(rel); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.logger.Warn("caching viewer relations failed", zap.Error(err))
			}
		}
	}

	return rel, nil
}
