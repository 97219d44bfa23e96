package domain

// Feed pagination bounds.
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50

	// FeedFetchWindow is the per-kind candidate cap. Posts and videos are
	// each fetched up to this many rows before scoring and merging.
	FeedFetchWindow = 100
)

// FeedParams holds the inputs of a feed request.
type FeedParams struct {
	ViewerID  string
	Cursor    string // last-seen item id, empty for the first page
	Limit     int
	Page      int  // 1-indexed, page mode only
	Paginated bool // switches from cursor mode to page mode
}

// Normalize clamps the parameters into their accepted ranges.
func (p *FeedParams) Normalize() {
	if p.Limit < 1 {
		p.Limit = DefaultFeedLimit
	}
	if p.Limit > MaxFeedLimit {
		p.Limit = MaxFeedLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

// FeedPage is one page of a ranked feed.
//
// Cursor mode populates NextCursor and HasMore; page mode populates
// Page, TotalPages and Total.
type FeedPage struct {
	Items      []*FeedItem
	NextCursor string
	HasMore    bool
	Page       int
	TotalPages int
	Total      int
}

// PaginateByCursor slices a freshly sorted feed after the cursor item.
//
// The cursor is a content-identity pointer, not an offset: its position
// is looked up in the recomputed ranking on every request. Items that
// rise above the cursor between requests leak into later pages; that
// staleness is accepted.
//
// An unknown or empty cursor starts from the top. HasMore is true iff
// the returned page is exactly limit items long.
func PaginateByCursor(sorted []*FeedItem, cursor string, limit int) *FeedPage {
	start := 0
	if cursor != "" {
		for i, item := range sorted {
			if item.ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	items := sorted[start:end]

	page := &FeedPage{
		Items:   items,
		HasMore: len(items) == limit,
	}
	if page.HasMore {
		page.NextCursor = items[len(items)-1].ID
	}
	return page
}

// PaginateByPage slices a sorted feed by 1-indexed page number.
func PaginateByPage(sorted []*FeedItem, pageNum, limit int) *FeedPage {
	total := len(sorted)
	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	start := (pageNum - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &FeedPage{
		Items:      sorted[start:end],
		Page:       pageNum,
		TotalPages: totalPages,
		Total:      total,
		HasMore:    pageNum < totalPages,
	}
}
