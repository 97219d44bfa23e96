package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"arena-feed-service/internal/domain"
)

// Repository implements the domain store ports on PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// eligible narrows a query to feed/search eligible rows.
func eligible(db *gorm.DB) *gorm.DB {
	return db.Where("visibility = ? AND moderation_status = ?", VisibilityPublic, ModerationApproved)
}

// QueryPosts returns up to limit eligible posts, newest first.
func (r *Repository) QueryPosts(ctx context.Context, limit int) ([]*domain.FeedItem, error) {
	var models []PostModel
	err := eligible(r.db.WithContext(ctx)).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}

	items := make([]*domain.FeedItem, 0, len(models))
	for i := range models {
		items = append(items, models[i].ToFeedItem())
	}

	return items, nil
}

// QueryVideos returns up to limit eligible videos, newest first.
func (r *Repository) QueryVideos(ctx context.Context, limit int) ([]*domain.FeedItem, error) {
	var models []VideoModel
	err := eligible(r.db.WithContext(ctx)).
		Preload("Author").
		Order("published_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}

	items := make([]*domain.FeedItem, 0, len(models))
	for i := range models {
		items = append(items, models[i].ToFeedItem())
	}

	return items, nil
}

// FollowedAuthors returns the ids of the users the viewer follows.
func (r *Repository) FollowedAuthors(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&FollowModel{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("querying followed authors: %w", err)
	}

	return ids, nil
}

// GamePreferences returns the viewer's preferred game list.
func (r *Repository) GamePreferences(ctx context.Context, userID string) ([]string, error) {
	var profile ProfileModel
	err := r.db.WithContext(ctx).
		Select("game_preferences").
		Where("id = ?", userID).
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("querying game preferences: %w", err)
	}

	return profile.GamePreferences, nil
}

// LikedItems returns the subset of itemIDs the viewer has liked.
func (r *Repository) LikedItems(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&LikeModel{}).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("querying liked items: %w", err)
	}

	return ids, nil
}

// SearchProfiles returns profile candidates matching the query.
func (r *Repository) SearchProfiles(ctx context.Context, query string, limit int) ([]*domain.SearchResult, error) {
	pattern := likePattern(query)

	var models []ProfileModel
	err := r.db.WithContext(ctx).
		Where("username ILIKE ? OR full_name ILIKE ? OR bio ILIKE ?", pattern, pattern, pattern).
		Order("followers_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(models))
	for i := range models {
		results = append(results, models[i].ToSearchResult())
	}

	return results, nil
}

// SearchPosts returns post candidates matching the query.
func (r *Repository) SearchPosts(ctx context.Context, query string, limit int) ([]*domain.SearchResult, error) {
	pattern := likePattern(query)

	var models []PostModel
	err := eligible(r.db.WithContext(ctx)).
		Where("title ILIKE ? OR game ILIKE ? OR description ILIKE ?", pattern, pattern, pattern).
		Order("view_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(models))
	for i := range models {
		results = append(results, models[i].ToSearchResult())
	}

	return results, nil
}

// SearchVideos returns video candidates matching the query.
func (r *Repository) SearchVideos(ctx context.Context, query string, limit int) ([]*domain.SearchResult, error) {
	pattern := likePattern(query)

	var models []VideoModel
	err := eligible(r.db.WithContext(ctx)).
		Where("title ILIKE ? OR game ILIKE ? OR description ILIKE ?", pattern, pattern, pattern).
		Order("view_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("searching videos: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(models))
	for i := range models {
		results = append(results, models[i].ToSearchResult())
	}

	return results, nil
}

// likePattern builds an ILIKE pattern with LIKE metacharacters escaped.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}

// BulkUpsertHighlights inserts or refreshes provider highlights, keyed
// on provider_id + external_id. Counters and metadata are refreshed on
// conflict; moderation fields are not touched so an operator takedown
// survives re-ingestion.
func (r *Repository) BulkUpsertHighlights(ctx context.Context, highlights []*domain.Highlight) error {
	if len(highlights) == 0 {
		return nil
	}

	models := make([]*VideoModel, 0, len(highlights))
	for _, h := range highlights {
		models = append(models, FromHighlight(h))
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "thumbnail_url", "video_url",
				"game", "mode", "duration_seconds",
				"view_count", "like_count", "published_at", "updated_at",
			}),
		}).
		Create(&models).Error
	if err != nil {
		return fmt.Errorf("upserting highlights: %w", err)
	}

	return nil
}

// TrendingCandidates returns up to limit recent eligible items per kind.
func (r *Repository) TrendingCandidates(ctx context.Context, limit int) ([]*domain.TrendingCandidate, error) {
	var posts []PostModel
	err := eligible(r.db.WithContext(ctx)).
		Select("id", "view_count", "like_count", "comment_count", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("querying trending post candidates: %w", err)
	}

	var videos []VideoModel
	err = eligible(r.db.WithContext(ctx)).
		Select("id", "view_count", "like_count", "comment_count", "watch_time_seconds", "published_at").
		Order("published_at DESC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("querying trending video candidates: %w", err)
	}

	candidates := make([]*domain.TrendingCandidate, 0, len(posts)+len(videos))
	for i := range posts {
		p := &posts[i]
		candidates = append(candidates, &domain.TrendingCandidate{
			ID:           p.ID,
			Kind:         domain.ItemKindPost,
			ViewCount:    p.ViewCount,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			CreatedAt:    p.CreatedAt,
		})
	}
	for i := range videos {
		v := &videos[i]
		candidates = append(candidates, &domain.TrendingCandidate{
			ID:               v.ID,
			Kind:             domain.ItemKindVideo,
			ViewCount:        v.ViewCount,
			LikeCount:        v.LikeCount,
			CommentCount:     v.CommentCount,
			WatchTimeSeconds: v.WatchTimeSeconds,
			CreatedAt:        v.PublishedAt,
		})
	}

	return candidates, nil
}

// UpdateTrendingScores persists recomputed trending scores in a single
// transaction.
func (r *Repository) UpdateTrendingScores(ctx context.Context, updates []domain.TrendingScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			var model interface{}
			switch u.Kind {
			case domain.ItemKindPost:
				model = &PostModel{}
			case domain.ItemKindVideo:
				model = &VideoModel{}
			default:
				continue
			}

			err := tx.Model(model).
				Where("id = ?", u.ID).
				Update("trending_score", u.Score).Error
			if err != nil {
				return fmt.Errorf("updating trending score for %s %s: %w", u.Kind, u.ID, err)
			}
		}

		return nil
	})
}

// CountsByKind returns row counts keyed by "posts", "videos", "profiles".
func (r *Repository) CountsByKind(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 3)

	for _, t := range []struct {
		key   string
		model interface{}
	}{
		{"posts", &PostModel{}},
		{"videos", &VideoModel{}},
		{"profiles", &ProfileModel{}},
	} {
		var n int64
		if err := r.db.WithContext(ctx).Model(t.model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("counting %s: %w", t.key, err)
		}
		counts[t.key] = n
	}

	return counts, nil
}

// TopTrending returns the n highest stored trending scores across posts
// and videos. RankingScore carries the stored score here since the
// dashboard has no viewer to rank for.
func (r *Repository) TopTrending(ctx context.Context, n int) ([]*domain.FeedItem, error) {
	var posts []PostModel
	err := eligible(r.db.WithContext(ctx)).
		Preload("Author").
		Order("trending_score DESC").
		Limit(n).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("querying top trending posts: %w", err)
	}

	var videos []VideoModel
	err = eligible(r.db.WithContext(ctx)).
		Preload("Author").
		Order("trending_score DESC").
		Limit(n).
		Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("querying top trending videos: %w", err)
	}

	items := make([]*domain.FeedItem, 0, len(posts)+len(videos))
	for i := range posts {
		item := posts[i].ToFeedItem()
		item.RankingScore = posts[i].TrendingScore
		items = append(items, item)
	}
	for i := range videos {
		item := videos[i].ToFeedItem()
		item.RankingScore = videos[i].TrendingScore
		items = append(items, item)
	}

	items = domain.SortByTrending(items)
	if len(items) > n {
		items = items[:n]
	}

	return items, nil
}
