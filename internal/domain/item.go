// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import "time"

// ItemKind discriminates the two feed content types.
type ItemKind string

const (
	ItemKindPost  ItemKind = "post"
	ItemKindVideo ItemKind = "video"
)

// Author holds the display fields of an item's creator.
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// FeedItem is a scored, viewer-relative view of a post or video.
// It is computed fresh per request and never persisted; RankingScore
// is derived at request time.
type FeedItem struct {
	ID           string   `json:"id"`
	Kind         ItemKind `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Slug         string   `json:"slug"`
	ThumbnailURL string   `json:"thumbnail_url"`

	// Video-only fields
	VideoURL         string  `json:"video_url,omitempty"`
	DurationSeconds  int     `json:"duration,omitempty"`
	WatchTimeSeconds float64 `json:"watch_time,omitempty"`

	Game string `json:"game"`
	Mode string `json:"mode"`

	// Engagement counters
	ViewCount    int `json:"view_count"`
	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`

	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`

	// Viewer-relative annotations
	IsLiked     bool `json:"is_liked"`
	IsFollowing bool `json:"is_following"`

	// Derived, not stored
	RankingScore float64 `json:"ranking_score"`
}

// IsVideo returns true if the item is a video.
func (i *FeedItem) IsVideo() bool {
	return i.Kind == ItemKindVideo
}

// ViewerContext holds the relationship data of the requesting user.
// A nil ViewerContext represents an anonymous viewer: all lookups
// return false and the affinity multiplier stays at 1.0.
type ViewerContext struct {
	UserID          string
	Following       map[string]struct{} // author ids the viewer follows
	GamePreferences map[string]struct{}
	Liked           map[string]struct{} // item ids the viewer has liked
}

// NewViewerContext builds a ViewerContext from raw id lists.
func NewViewerContext(userID string, following, gamePreferences, liked []string) *ViewerContext {
	return &ViewerContext{
		UserID:          userID,
		Following:       toSet(following),
		GamePreferences: toSet(gamePreferences),
		Liked:           toSet(liked),
	}
}

// Follows reports whether the viewer follows the given author.
func (v *ViewerContext) Follows(authorID string) bool {
	if v == nil {
		return false
	}
	_, ok := v.Following[authorID]
	return ok
}

// PrefersGame reports whether the game is in the viewer's preferences.
func (v *ViewerContext) PrefersGame(game string) bool {
	if v == nil || game == "" {
		return false
	}
	_, ok := v.GamePreferences[game]
	return ok
}

// HasLiked reports whether the viewer has liked the given item.
func (v *ViewerContext) HasLiked(itemID string) bool {
	if v == nil {
		return false
	}
	_, ok := v.Liked[itemID]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
