package domain

import (
	"math"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestEngagementScore_WeightOrdering(t *testing.T) {
	// One comment must contribute more than one like, which must
	// contribute more than one view.
	view := EngagementScore(1, 0, 0, 0)
	like := EngagementScore(0, 1, 0, 0)
	comment := EngagementScore(0, 0, 1, 0)

	if !(comment > like && like > view) {
		t.Errorf("weight ordering violated: comment=%v like=%v view=%v", comment, like, view)
	}
}

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name      string
		views     int
		likes     int
		comments  int
		watchTime float64
		expected  float64
	}{
		{"all zero", 0, 0, 0, 0, 0},
		{"views only", 100, 0, 0, 0, 100},
		{"likes only", 0, 10, 0, 0, 50},
		{"comments only", 0, 0, 10, 0, 100},
		{"watch time only", 0, 0, 0, 600, 60},
		{"combined", 1000, 50, 10, 300, 1000 + 250 + 100 + 30},
		{"negative counters coerce to zero", -5, -1, -1, -30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EngagementScore(tt.views, tt.likes, tt.comments, tt.watchTime)
			if !almostEqual(got, tt.expected) {
				t.Errorf("EngagementScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFeedDecay_Monotonic(t *testing.T) {
	now := time.Now()

	recent := FeedDecay(now.Add(-1*time.Hour), now)
	old := FeedDecay(now.Add(-100*time.Hour), now)

	if recent <= old {
		t.Errorf("decay(1h)=%v must be strictly greater than decay(100h)=%v", recent, old)
	}
}

func TestFeedDecay_Values(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		age      time.Duration
		expected float64
	}{
		{"zero age", 0, 1.0},
		{"48h is one half-life constant", 48 * time.Hour, math.Exp(-1)},
		{"96h", 96 * time.Hour, math.Exp(-2)},
		{"future created_at clamps to 1", -2 * time.Hour, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeedDecay(now.Add(-tt.age), now)
			if !almostEqual(got, tt.expected) {
				t.Errorf("FeedDecay() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTrendingDecay_UsesLongerHalfLife(t *testing.T) {
	now := time.Now()
	createdAt := now.Add(-72 * time.Hour)

	if got := TrendingDecay(createdAt, now); !almostEqual(got, math.Exp(-1)) {
		t.Errorf("TrendingDecay(72h) = %v, want %v", got, math.Exp(-1))
	}

	// At equal age the trending curve must decay slower than the feed curve.
	if TrendingDecay(createdAt, now) <= FeedDecay(createdAt, now) {
		t.Error("72h half-life must decay slower than 48h half-life")
	}
}

func TestAffinityMultiplier(t *testing.T) {
	tests := []struct {
		name        string
		isFollowing bool
		sameGame    bool
		expected    float64
	}{
		{"neither", false, false, 1.0},
		{"following only", true, false, 1.5},
		{"same game only", false, true, 1.3},
		{"both, capped at 1.8", true, true, 1.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AffinityMultiplier(tt.isFollowing, tt.sameGame)
			if !almostEqual(got, tt.expected) {
				t.Errorf("AffinityMultiplier(%v, %v) = %v, want %v", tt.isFollowing, tt.sameGame, got, tt.expected)
			}
		})
	}
}

func TestRankingScore_BoosterAdditivity(t *testing.T) {
	now := time.Now()
	item := &FeedItem{
		ID:        "item-1",
		Game:      "free-fire",
		ViewCount: 100,
		LikeCount: 20,
		CreatedAt: now.Add(-10 * time.Hour),
		Author:    Author{ID: "author-1"},
	}
	base := EngagementScore(100, 20, 0, 0) * FeedDecay(item.CreatedAt, now)

	anonymous := RankingScore(item, nil, now)
	if !almostEqual(anonymous, base*1.0) {
		t.Errorf("anonymous score = %v, want engagement*decay*1.0 = %v", anonymous, base)
	}

	viewer := NewViewerContext("viewer-1", []string{"author-1"}, []string{"free-fire"}, nil)
	boosted := RankingScore(item, viewer, now)
	if !almostEqual(boosted, base*1.8) {
		t.Errorf("boosted score = %v, want engagement*decay*1.8 = %v", boosted, base*1.8)
	}
}

func TestRankingScore_NonNegative(t *testing.T) {
	now := time.Now()
	item := &FeedItem{CreatedAt: now.Add(-5000 * time.Hour)}

	if got := RankingScore(item, nil, now); got < 0 {
		t.Errorf("RankingScore() = %v, must be non-negative", got)
	}
}

func TestSortByTrending_StableAndNonMutating(t *testing.T) {
	items := []*FeedItem{
		{ID: "a", RankingScore: 5},
		{ID: "b", RankingScore: 10},
		{ID: "c", RankingScore: 5}, // ties with "a", must stay after it
		{ID: "d", RankingScore: 1},
	}
	originalFirst := items[0]

	first := SortByTrending(items)
	second := SortByTrending(items)

	if items[0] != originalFirst {
		t.Error("SortByTrending must not mutate its input")
	}

	wantOrder := []string{"b", "a", "c", "d"}
	for i, id := range wantOrder {
		if first[i].ID != id {
			t.Fatalf("sorted[%d] = %s, want %s", i, first[i].ID, id)
		}
		if second[i].ID != first[i].ID {
			t.Fatalf("repeated sort diverged at index %d", i)
		}
	}
}

func TestViewerContext_NilSafe(t *testing.T) {
	var viewer *ViewerContext

	if viewer.Follows("x") || viewer.PrefersGame("x") || viewer.HasLiked("x") {
		t.Error("nil viewer must report no relationships")
	}
}
