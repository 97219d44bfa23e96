package postgres

import (
	"time"

	"github.com/lib/pq"

	"arena-feed-service/internal/domain"
)

// Moderation and visibility states. Only public+approved rows are feed
// and search eligible.
const (
	VisibilityPublic   = "public"
	ModerationApproved = "approved"
)

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	ID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName        string         `gorm:"type:varchar(100)"`
	AvatarURL       string         `gorm:"type:varchar(500)"`
	Bio             string         `gorm:"type:text"`
	FollowersCount  int            `gorm:"default:0"`
	GamePreferences pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToSearchResult converts a profile row to a search result candidate.
func (m *ProfileModel) ToSearchResult() *domain.SearchResult {
	return &domain.SearchResult{
		Type:           domain.SearchTypeProfile,
		ID:             m.ID,
		Username:       m.Username,
		FullName:       m.FullName,
		AvatarURL:      m.AvatarURL,
		Bio:            m.Bio,
		FollowersCount: m.FollowersCount,
	}
}

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID     string `gorm:"type:uuid;not null;index"`
	Title        string `gorm:"type:varchar(500);not null"`
	Description  string `gorm:"type:text"`
	Slug         string `gorm:"type:varchar(200);uniqueIndex"`
	ThumbnailURL string `gorm:"type:varchar(500)"`
	Game         string `gorm:"type:varchar(100);index"`
	Mode         string `gorm:"type:varchar(50)"`

	ViewCount    int `gorm:"default:0"`
	LikeCount    int `gorm:"default:0"`
	CommentCount int `gorm:"default:0"`

	Visibility       string  `gorm:"type:varchar(20);not null;default:public"`
	ModerationStatus string  `gorm:"type:varchar(20);not null;default:pending;index"`
	TrendingScore    float64 `gorm:"type:decimal(14,4);default:0;index"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Author ProfileModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for PostModel.
func (PostModel) TableName() string {
	return "posts"
}

// ToFeedItem converts a post row to a feed candidate. RankingScore is
// left at zero; it is derived per request in the service layer.
func (m *PostModel) ToFeedItem() *domain.FeedItem {
	return &domain.FeedItem{
		ID:           m.ID,
		Kind:         domain.ItemKindPost,
		Title:        m.Title,
		Description:  m.Description,
		Slug:         m.Slug,
		ThumbnailURL: m.ThumbnailURL,
		Game:         m.Game,
		Mode:         m.Mode,
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		CreatedAt:    m.CreatedAt,
		Author:       m.Author.toAuthor(),
	}
}

// ToSearchResult converts a post row to a search result candidate.
func (m *PostModel) ToSearchResult() *domain.SearchResult {
	return &domain.SearchResult{
		Type:         domain.SearchTypePost,
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Slug:         m.Slug,
		ThumbnailURL: m.ThumbnailURL,
		Game:         m.Game,
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
	}
}

// VideoModel is the GORM model for the videos table. Ingested provider
// highlights share this table with native uploads; the
// provider_id+external_id pair is the upsert key.
type VideoModel struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID     string `gorm:"type:uuid;index"`
	ProviderID   string `gorm:"type:varchar(50);not null;default:native;index:idx_videos_provider_external,unique"`
	ExternalID   string `gorm:"type:varchar(100);not null;default:gen_random_uuid();index:idx_videos_provider_external,unique"`
	Title        string `gorm:"type:varchar(500);not null"`
	Description  string `gorm:"type:text"`
	Slug         string `gorm:"type:varchar(200);uniqueIndex"`
	ThumbnailURL string `gorm:"type:varchar(500)"`
	VideoURL     string `gorm:"type:varchar(500)"`
	Game         string `gorm:"type:varchar(100);index"`
	Mode         string `gorm:"type:varchar(50)"`

	DurationSeconds  int     `gorm:"default:0"`
	WatchTimeSeconds float64 `gorm:"default:0"`
	ViewCount        int     `gorm:"default:0"`
	LikeCount        int     `gorm:"default:0"`
	CommentCount     int     `gorm:"default:0"`

	Visibility       string  `gorm:"type:varchar(20);not null;default:public"`
	ModerationStatus string  `gorm:"type:varchar(20);not null;default:pending;index"`
	TrendingScore    float64 `gorm:"type:decimal(14,4);default:0;index"`

	PublishedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Author ProfileModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for VideoModel.
func (VideoModel) TableName() string {
	return "videos"
}

// ToFeedItem converts a video row to a feed candidate.
func (m *VideoModel) ToFeedItem() *domain.FeedItem {
	return &domain.FeedItem{
		ID:               m.ID,
		Kind:             domain.ItemKindVideo,
		Title:            m.Title,
		Description:      m.Description,
		Slug:             m.Slug,
		ThumbnailURL:     m.ThumbnailURL,
		VideoURL:         m.VideoURL,
		DurationSeconds:  m.DurationSeconds,
		WatchTimeSeconds: m.WatchTimeSeconds,
		Game:             m.Game,
		Mode:             m.Mode,
		ViewCount:        m.ViewCount,
		LikeCount:        m.LikeCount,
		CommentCount:     m.CommentCount,
		CreatedAt:        m.PublishedAt,
		Author:           m.Author.toAuthor(),
	}
}

// ToSearchResult converts a video row to a search result candidate.
func (m *VideoModel) ToSearchResult() *domain.SearchResult {
	return &domain.SearchResult{
		Type:         domain.SearchTypeVideo,
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Slug:         m.Slug,
		ThumbnailURL: m.ThumbnailURL,
		Game:         m.Game,
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
	}
}

// FromHighlight creates a VideoModel from an ingested highlight.
// Ingested rows go straight to public/approved: the provider feed is
// curated upstream.
func FromHighlight(h *domain.Highlight) *VideoModel {
	return &VideoModel{
		ProviderID:       h.ProviderID,
		ExternalID:       h.ExternalID,
		Title:            h.Title,
		Description:      h.Description,
		ThumbnailURL:     h.ThumbnailURL,
		VideoURL:         h.VideoURL,
		Game:             h.Game,
		Mode:             h.Mode,
		DurationSeconds:  h.DurationSeconds,
		ViewCount:        h.ViewCount,
		LikeCount:        h.LikeCount,
		Visibility:       VisibilityPublic,
		ModerationStatus: ModerationApproved,
		PublishedAt:      h.PublishedAt,
	}
}

func (m *ProfileModel) toAuthor() domain.Author {
	return domain.Author{
		ID:        m.ID,
		Username:  m.Username,
		FullName:  m.FullName,
		AvatarURL: m.AvatarURL,
	}
}

// FollowModel is the GORM model for the follows table.
type FollowModel struct {
	FollowerID string    `gorm:"type:uuid;primaryKey"`
	FollowedID string    `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for FollowModel.
func (FollowModel) TableName() string {
	return "follows"
}

// LikeModel is the GORM model for the likes table. ItemKind tells posts
// and videos apart since their ids live in separate tables.
type LikeModel struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	ItemID    string    `gorm:"type:uuid;primaryKey;index"`
	ItemKind  string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for LikeModel.
func (LikeModel) TableName() string {
	return "likes"
}
