package dto

import (
	"arena-feed-service/internal/app/service"
	"arena-feed-service/internal/domain"
)

// FeedResponse is the cursor-mode feed payload.
type FeedResponse struct {
	Items      []*domain.FeedItem `json:"items"`
	NextCursor *string            `json:"nextCursor"`
	HasMore    bool               `json:"hasMore"`
}

// PaginatedFeedResponse is the page-mode feed payload.
type PaginatedFeedResponse struct {
	Items      []*domain.FeedItem `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
}

// FromFeedPage converts a domain.FeedPage to the wire shape of its
// pagination mode. nextCursor is explicit null on the last page.
func FromFeedPage(page *domain.FeedPage, paginated bool) interface{} {
	items := page.Items
	if items == nil {
		items = []*domain.FeedItem{}
	}

	if paginated {
		return PaginatedFeedResponse{
			Items:      items,
			Page:       page.Page,
			TotalPages: page.TotalPages,
			Total:      page.Total,
		}
	}

	resp := FeedResponse{
		Items:   items,
		HasMore: page.HasMore,
	}
	if page.NextCursor != "" {
		cursor := page.NextCursor
		resp.NextCursor = &cursor
	}

	return resp
}

// SearchResponse is the search payload.
type SearchResponse struct {
	Results []*domain.SearchResult `json:"results"`
	Total   int                    `json:"total"`
	HasMore bool                   `json:"hasMore"`
}

// FromSearchPage converts a domain.SearchPage to SearchResponse.
func FromSearchPage(page *domain.SearchPage) SearchResponse {
	results := page.Results
	if results == nil {
		results = []*domain.SearchResult{}
	}

	return SearchResponse{
		Results: results,
		Total:   page.Total,
		HasMore: page.HasMore,
	}
}

// SyncResultResponse represents the outcome of one provider sync.
type SyncResultResponse struct {
	Provider string `json:"provider"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// SyncResponse represents the response for a sync-all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds the summary of a sync operation.
type SyncSummary struct {
	TotalSynced   int `json:"total_synced"`
	ProvidersOK   int `json:"providers_ok"`
	ProvidersFail int `json:"providers_fail"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.ProvidersFail++
		} else {
			resp.Summary.TotalSynced += r.Count
			resp.Summary.ProvidersOK++
		}

		resp.Results[i] = SyncResultResponse{
			Provider: r.Provider,
			Count:    r.Count,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
