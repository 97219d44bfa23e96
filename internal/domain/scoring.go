package domain

import (
	"math"
	"sort"
	"time"
)

// Engagement weights. Comments are the strongest signal, then likes,
// then raw views; watch time is a fractional continuous signal for video.
const (
	weightView      = 1.0
	weightLike      = 5.0
	weightComment   = 10.0
	weightWatchTime = 0.1
)

// Decay half-lives in hours. The feed and the stored trending score use
// different constants on purpose; they model different product surfaces
// and must not be unified without product sign-off.
const (
	feedDecayHours     = 48.0 // feed ranking
	trendingDecayHours = 72.0 // background trending_score refresh
)

// Affinity boosts. Additive and independent: both can apply, so the
// multiplier ranges from 1.0 to 1.8.
const (
	followBoost   = 0.5
	gamePrefBoost = 0.3
)

// EngagementScore computes the weighted engagement value.
//
//	engagement = views*1 + likes*5 + comments*10 + watch_time_seconds*0.1
//
// Negative counters are treated as zero so the score stays non-negative.
func EngagementScore(views, likes, comments int, watchTimeSeconds float64) float64 {
	return float64(max(views, 0))*weightView +
		float64(max(likes, 0))*weightLike +
		float64(max(comments, 0))*weightComment +
		math.Max(watchTimeSeconds, 0)*weightWatchTime
}

// FeedDecay returns the exponential time-decay factor for feed ranking,
// exp(-age_hours / 48). Ages clamp at zero so clock skew cannot inflate
// a score above its raw engagement value.
func FeedDecay(createdAt, now time.Time) float64 {
	return decay(createdAt, now, feedDecayHours)
}

// TrendingDecay returns the decay factor used by the stored trending
// score, exp(-age_hours / 72).
func TrendingDecay(createdAt, now time.Time) float64 {
	return decay(createdAt, now, trendingDecayHours)
}

func decay(createdAt, now time.Time, halfLifeHours float64) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return math.Exp(-ageHours / halfLifeHours)
}

// AffinityMultiplier returns the relationship boost applied to the
// decayed engagement score.
func AffinityMultiplier(isFollowing, sameGamePreference bool) float64 {
	multiplier := 1.0
	if isFollowing {
		multiplier += followBoost
	}
	if sameGamePreference {
		multiplier += gamePrefBoost
	}
	return multiplier
}

// RankingScore computes the final feed score for an item as seen by the
// viewer: engagement × decay × affinity. The viewer may be nil.
//
// Scores are recomputed per call, never memoized: identical requests
// seconds apart produce slightly different values as items age.
func RankingScore(item *FeedItem, viewer *ViewerContext, now time.Time) float64 {
	engagement := EngagementScore(item.ViewCount, item.LikeCount, item.CommentCount, item.WatchTimeSeconds)
	multiplier := AffinityMultiplier(viewer.Follows(item.Author.ID), viewer.PrefersGame(item.Game))
	return engagement * FeedDecay(item.CreatedAt, now) * multiplier
}

// TrendingScore computes the viewer-independent score persisted by the
// background refresh job. Same engagement formula, 72h half-life, no
// affinity component.
func TrendingScore(views, likes, comments int, watchTimeSeconds float64, createdAt, now time.Time) float64 {
	return EngagementScore(views, likes, comments, watchTimeSeconds) * TrendingDecay(createdAt, now)
}

// SortByTrending returns a new slice sorted descending by RankingScore.
// The sort is stable (ties keep the input's order, which reflects the
// upstream query order) and the input slice is never mutated.
func SortByTrending(items []*FeedItem) []*FeedItem {
	sorted := make([]*FeedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].RankingScore > sorted[b].RankingScore
	})
	return sorted
}
