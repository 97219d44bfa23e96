package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"arena-feed-service/internal/domain"
)

// errStoreDown simulates an unreachable backing store.
var errStoreDown = errors.New("store unreachable")

// fakeStore is an in-memory DataStore/IngestStore/StatsStore for
// service tests. Setting fail* makes the matching call return an error.
type fakeStore struct {
	mu sync.Mutex

	posts  []*domain.FeedItem
	videos []*domain.FeedItem

	following   map[string][]string
	preferences map[string][]string
	liked       map[string][]string

	profileResults []*domain.SearchResult
	postResults    []*domain.SearchResult
	videoResults   []*domain.SearchResult

	highlights []*domain.Highlight
	candidates []*domain.TrendingCandidate
	updates    []domain.TrendingScoreUpdate

	failPosts    bool
	failVideos   bool
	failFollows  bool
	failLikes    bool
	failProfiles bool
	failUpsert   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		following:   map[string][]string{},
		preferences: map[string][]string{},
		liked:       map[string][]string{},
	}
}

func capItems(items []*domain.FeedItem, limit int) []*domain.FeedItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func capResults(results []*domain.SearchResult, limit int) []*domain.SearchResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

func (f *fakeStore) QueryPosts(_ context.Context, limit int) ([]*domain.FeedItem, error) {
	if f.failPosts {
		return nil, errStoreDown
	}
	return capItems(f.posts, limit), nil
}

func (f *fakeStore) QueryVideos(_ context.Context, limit int) ([]*domain.FeedItem, error) {
	if f.failVideos {
		return nil, errStoreDown
	}
	return capItems(f.videos, limit), nil
}

func (f *fakeStore) FollowedAuthors(_ context.Context, userID string) ([]string, error) {
	if f.failFollows {
		return nil, errStoreDown
	}
	return f.following[userID], nil
}

func (f *fakeStore) GamePreferences(_ context.Context, userID string) ([]string, error) {
	return f.preferences[userID], nil
}

func (f *fakeStore) LikedItems(_ context.Context, userID string, itemIDs []string) ([]string, error) {
	if f.failLikes {
		return nil, errStoreDown
	}
	candidates := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		candidates[id] = struct{}{}
	}
	var liked []string
	for _, id := range f.liked[userID] {
		if _, ok := candidates[id]; ok {
			liked = append(liked, id)
		}
	}
	return liked, nil
}

func (f *fakeStore) SearchProfiles(_ context.Context, _ string, limit int) ([]*domain.SearchResult, error) {
	if f.failProfiles {
		return nil, errStoreDown
	}
	return capResults(f.profileResults, limit), nil
}

func (f *fakeStore) SearchPosts(_ context.Context, _ string, limit int) ([]*domain.SearchResult, error) {
	return capResults(f.postResults, limit), nil
}

func (f *fakeStore) SearchVideos(_ context.Context, _ string, limit int) ([]*domain.SearchResult, error) {
	return capResults(f.videoResults, limit), nil
}

func (f *fakeStore) BulkUpsertHighlights(_ context.Context, highlights []*domain.Highlight) error {
	if f.failUpsert {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.highlights = append(f.highlights, highlights...)
	return nil
}

func (f *fakeStore) TrendingCandidates(_ context.Context, limit int) ([]*domain.TrendingCandidate, error) {
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

func (f *fakeStore) UpdateTrendingScores(_ context.Context, updates []domain.TrendingScoreUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updates...)
	return nil
}

func (f *fakeStore) CountsByKind(_ context.Context) (map[string]int64, error) {
	return map[string]int64{
		"posts":    int64(len(f.posts)),
		"videos":   int64(len(f.videos)),
		"profiles": int64(len(f.profileResults)),
	}, nil
}

func (f *fakeStore) TopTrending(_ context.Context, n int) ([]*domain.FeedItem, error) {
	return capItems(f.posts, n), nil
}

// fakeProvider is a canned HighlightProvider.
type fakeProvider struct {
	name       string
	highlights []*domain.Highlight
	err        error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Fetch(context.Context) ([]*domain.Highlight, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.highlights, nil
}

func (p *fakeProvider) HealthCheck(context.Context) error { return p.err }

func feedItem(id, authorID, game string, likes int, age time.Duration) *domain.FeedItem {
	return &domain.FeedItem{
		ID:        id,
		Kind:      domain.ItemKindPost,
		Title:     "item " + id,
		Game:      game,
		LikeCount: likes,
		CreatedAt: time.Now().Add(-age),
		Author:    domain.Author{ID: authorID, Username: "user-" + authorID},
	}
}
