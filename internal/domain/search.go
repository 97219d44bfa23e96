package domain

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// SearchType filters a search to a single result category.
type SearchType string

const (
	SearchTypeProfile SearchType = "profile"
	SearchTypePost    SearchType = "post"
	SearchTypeVideo   SearchType = "video"
)

// Search pagination bounds.
const (
	MinQueryLength     = 2
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// ErrQueryTooShort is returned when the search query is below the
// minimum length. Handlers map it to a 400 response.
var ErrQueryTooShort = errors.New("search query must be at least 2 characters")

// Discrete per-field match weights. Matching is exact substring
// presence (case-insensitive), not fuzzy.
const (
	weightTitleMatch       = 3.0
	weightGameMatch        = 2.0
	weightDescriptionMatch = 1.0

	weightUsernameMatch = 3.0
	weightFullNameMatch = 2.0
	weightBioMatch      = 1.0

	popularityBoostFactor = 0.5
)

// SearchParams holds the inputs of a search request.
type SearchParams struct {
	Query  string
	Type   SearchType // empty means all categories
	Limit  int
	Offset int
}

// Validate checks the query length and clamps limit/offset.
func (p *SearchParams) Validate() error {
	if len(strings.TrimSpace(p.Query)) < MinQueryLength {
		return ErrQueryTooShort
	}
	if p.Limit < 1 {
		p.Limit = DefaultSearchLimit
	}
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return nil
}

// Includes reports whether the given category participates in the search.
func (p *SearchParams) Includes(t SearchType) bool {
	return p.Type == "" || p.Type == t
}

// CategoryCap returns the per-category fetch cap: the full limit when a
// single type is requested, else ceil(limit/3) to keep the blended
// result set balanced.
//
// Candidates are capped per category before global scoring, so a
// high-relevance item outside its category's window is silently
// excluded. That precision/recall tradeoff is inherent to the
// fetch-then-score design; widening the caps would change the
// performance characteristics materially.
func (p *SearchParams) CategoryCap() int {
	if p.Type != "" {
		return p.Limit
	}
	return (p.Limit + 2) / 3
}

// SearchResult is a scored, merged view over the three searchable
// entity categories. Only the fields of its Type are populated.
type SearchResult struct {
	Type SearchType `json:"type"`
	ID   string     `json:"id"`

	// Profile fields
	Username       string `json:"username,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count,omitempty"`

	// Post/video fields
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Slug         string `json:"slug,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Game         string `json:"game,omitempty"`
	ViewCount    int    `json:"view_count,omitempty"`
	LikeCount    int    `json:"like_count,omitempty"`

	// Derived, not stored
	RelevanceScore float64 `json:"relevance_score"`
}

// Relevance computes the relevance score of a result for the query:
// the sum of its matched field weights plus a logarithmic popularity
// boost, log10(popularity+1) * 0.5.
func Relevance(r *SearchResult, query string) float64 {
	var score float64
	var popularity float64

	switch r.Type {
	case SearchTypeProfile:
		if containsFold(r.Username, query) {
			score += weightUsernameMatch
		}
		if containsFold(r.FullName, query) {
			score += weightFullNameMatch
		}
		if containsFold(r.Bio, query) {
			score += weightBioMatch
		}
		popularity = float64(r.FollowersCount)
	default:
		if containsFold(r.Title, query) {
			score += weightTitleMatch
		}
		if containsFold(r.Game, query) {
			score += weightGameMatch
		}
		if containsFold(r.Description, query) {
			score += weightDescriptionMatch
		}
		popularity = float64(r.ViewCount) + float64(r.LikeCount)*5
	}

	if popularity < 0 {
		popularity = 0
	}
	return score + math.Log10(popularity+1)*popularityBoostFactor
}

func containsFold(field, query string) bool {
	if field == "" || query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

// SortByRelevance returns a new slice sorted descending by
// RelevanceScore. Stable, never mutates the input.
func SortByRelevance(results []*SearchResult) []*SearchResult {
	sorted := make([]*SearchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].RelevanceScore > sorted[b].RelevanceScore
	})
	return sorted
}

// SearchPage is one offset-paginated slice of merged search results.
type SearchPage struct {
	Results []*SearchResult
	Total   int
	HasMore bool
}

// PaginateResults applies offset-based pagination over the merged,
// sorted result list.
func PaginateResults(sorted []*SearchResult, offset, limit int) *SearchPage {
	total := len(sorted)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &SearchPage{
		Results: sorted[start:end],
		Total:   total,
		HasMore: offset+limit < total,
	}
}
