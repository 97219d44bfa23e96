// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "arena-feed-service/internal/domain"

// FeedRequest represents the query parameters for the feed endpoint.
//
// Cursor mode is the default; paginated=true switches to 1-indexed page
// mode and ignores the cursor.
type FeedRequest struct {
	UserID    string `query:"user_id" validate:"omitempty,max=100"`
	Cursor    string `query:"cursor" validate:"omitempty,max=100"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Paginated bool   `query:"paginated"`
}

// ToFeedParams converts FeedRequest to domain.FeedParams.
func (r *FeedRequest) ToFeedParams() domain.FeedParams {
	return domain.FeedParams{
		ViewerID:  r.UserID,
		Cursor:    r.Cursor,
		Limit:     r.Limit,
		Page:      r.Page,
		Paginated: r.Paginated,
	}
}

// SearchRequest represents the query parameters for the search endpoint.
type SearchRequest struct {
	Query  string `query:"q" validate:"required,min=2,max=200"`
	Type   string `query:"type" validate:"omitempty,oneof=profile post video"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

// ToSearchParams converts SearchRequest to domain.SearchParams.
func (r *SearchRequest) ToSearchParams() domain.SearchParams {
	return domain.SearchParams{
		Query:  r.Query,
		Type:   domain.SearchType(r.Type),
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}
