package domain

import (
	"context"
	"time"
)

// DataStore is the read-side collaborator behind the feed and search
// assemblers. Implementations: internal/infra/postgres/repository.go.
//
// Feed candidate queries must only return public items with approved
// moderation status; that eligibility filter belongs to the store, not
// to the scorers.
type DataStore interface {
	// QueryPosts returns up to limit eligible posts, newest first.
	QueryPosts(ctx context.Context, limit int) ([]*FeedItem, error)

	// QueryVideos returns up to limit eligible videos, newest first.
	QueryVideos(ctx context.Context, limit int) ([]*FeedItem, error)

	// FollowedAuthors returns the ids of the users the viewer follows.
	FollowedAuthors(ctx context.Context, userID string) ([]string, error)

	// GamePreferences returns the viewer's preferred game list.
	GamePreferences(ctx context.Context, userID string) ([]string, error)

	// LikedItems returns the subset of itemIDs the viewer has liked.
	LikedItems(ctx context.Context, userID string, itemIDs []string) ([]string, error)

	// SearchProfiles, SearchPosts and SearchVideos return up to limit
	// candidates whose searchable fields contain the query
	// (case-insensitive substring match). Relevance scoring happens in
	// the service layer, not in the store.
	SearchProfiles(ctx context.Context, query string, limit int) ([]*SearchResult, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*SearchResult, error)
	SearchVideos(ctx context.Context, query string, limit int) ([]*SearchResult, error)
}

// Highlight is a match-highlight video fetched from an external
// provider, ingested into the videos table.
type Highlight struct {
	ProviderID      string
	ExternalID      string
	Title           string
	Description     string
	ThumbnailURL    string
	VideoURL        string
	Game            string
	Mode            string
	DurationSeconds int
	ViewCount       int
	LikeCount       int
	PublishedAt     time.Time
}

// HighlightProvider is an external source of match highlights.
// Implementations: internal/infra/provider/highlights.
type HighlightProvider interface {
	// Name returns the unique identifier for this provider.
	Name() string

	// Fetch retrieves all currently available highlights.
	Fetch(ctx context.Context) ([]*Highlight, error)

	// HealthCheck verifies the provider is accessible.
	HealthCheck(ctx context.Context) error
}

// TrendingCandidate carries the counters needed to recompute an item's
// stored trending score.
type TrendingCandidate struct {
	ID               string
	Kind             ItemKind
	ViewCount        int
	LikeCount        int
	CommentCount     int
	WatchTimeSeconds float64
	CreatedAt        time.Time
}

// TrendingScoreUpdate is one recomputed score to persist.
type TrendingScoreUpdate struct {
	ID    string
	Kind  ItemKind
	Score float64
}

// IngestStore is the write-side collaborator used by background jobs.
// Implementations: internal/infra/postgres/repository.go.
type IngestStore interface {
	// BulkUpsertHighlights inserts or refreshes provider highlights,
	// keyed on provider_id + external_id.
	BulkUpsertHighlights(ctx context.Context, highlights []*Highlight) error

	// TrendingCandidates returns up to limit recent eligible items for
	// a trending refresh, per kind.
	TrendingCandidates(ctx context.Context, limit int) ([]*TrendingCandidate, error)

	// UpdateTrendingScores persists recomputed trending scores.
	UpdateTrendingScores(ctx context.Context, updates []TrendingScoreUpdate) error
}

// StatsStore feeds the operator dashboard.
type StatsStore interface {
	// CountsByKind returns row counts keyed by "posts", "videos", "profiles".
	CountsByKind(ctx context.Context) (map[string]int64, error)

	// TopTrending returns the n highest stored trending scores across
	// posts and videos.
	TopTrending(ctx context.Context, n int) ([]*FeedItem, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go.
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
