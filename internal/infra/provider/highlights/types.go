package highlights

import (
	"time"

	"arena-feed-service/internal/domain"
)

// Response represents the JSON payload of the highlights feed.
type Response struct {
	Highlights []HighlightItem `json:"highlights"`
	Pagination Pagination      `json:"pagination"`
}

// HighlightItem represents a single highlight entry.
type HighlightItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnail_url"`
	VideoURL     string  `json:"video_url"`
	Game         string  `json:"game"`
	Mode         string  `json:"mode"`
	Metrics      Metrics `json:"metrics"`
	PublishedAt  string  `json:"published_at"`
}

// Metrics holds the highlight's engagement counters.
type Metrics struct {
	Views           int `json:"views"`
	Likes           int `json:"likes"`
	DurationSeconds int `json:"duration_seconds"`
}

// Pagination holds pagination info.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ToDomain converts a HighlightItem to a domain.Highlight. An
// unparseable published_at yields a zero time rather than an error;
// the row still ingests and ages out of the feed immediately.
func (h *HighlightItem) ToDomain(providerID string) *domain.Highlight {
	publishedAt, _ := time.Parse(time.RFC3339, h.PublishedAt)

	return &domain.Highlight{
		ProviderID:      providerID,
		ExternalID:      h.ID,
		Title:           h.Title,
		Description:     h.Description,
		ThumbnailURL:    h.ThumbnailURL,
		VideoURL:        h.VideoURL,
		Game:            h.Game,
		Mode:            h.Mode,
		DurationSeconds: h.Metrics.DurationSeconds,
		ViewCount:       h.Metrics.Views,
		LikeCount:       h.Metrics.Likes,
		PublishedAt:     publishedAt,
	}
}
