package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arena-feed-service/internal/domain"
)

func highlight(id string) *domain.Highlight {
	return &domain.Highlight{
		ProviderID:  "clips",
		ExternalID:  id,
		Title:       "highlight " + id,
		Game:        "free-fire",
		PublishedAt: time.Now().UTC(),
	}
}

func TestHighlightSyncService_SyncAll(t *testing.T) {
	store := newFakeStore()
	providers := []domain.HighlightProvider{
		&fakeProvider{name: "clips", highlights: []*domain.Highlight{highlight("h1"), highlight("h2")}},
		&fakeProvider{name: "replays", highlights: []*domain.Highlight{highlight("h3")}},
	}

	svc := NewHighlightSyncService(store, providers, zap.NewNop())
	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	total := 0
	for _, r := range results {
		require.NoError(t, r.Error)
		total += r.Count
	}
	assert.Equal(t, 3, total)
	assert.Len(t, store.highlights, 3)
}

func TestHighlightSyncService_PartialProviderFailure(t *testing.T) {
	store := newFakeStore()
	providers := []domain.HighlightProvider{
		&fakeProvider{name: "clips", highlights: []*domain.Highlight{highlight("h1")}},
		&fakeProvider{name: "broken", err: errors.New("connection refused")},
	}

	svc := NewHighlightSyncService(store, providers, zap.NewNop())
	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Error)
	assert.Error(t, results[1].Error)

	// The healthy provider's highlights still land.
	assert.Len(t, store.highlights, 1)
}

func TestHighlightSyncService_SyncProvider(t *testing.T) {
	store := newFakeStore()
	providers := []domain.HighlightProvider{
		&fakeProvider{name: "clips", highlights: []*domain.Highlight{highlight("h1")}},
	}
	svc := NewHighlightSyncService(store, providers, zap.NewNop())

	result, err := svc.SyncProvider(context.Background(), "clips")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Count)

	unknown, err := svc.SyncProvider(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestHighlightSyncService_UpsertFailure(t *testing.T) {
	store := newFakeStore()
	store.failUpsert = true
	providers := []domain.HighlightProvider{
		&fakeProvider{name: "clips", highlights: []*domain.Highlight{highlight("h1")}},
	}

	svc := NewHighlightSyncService(store, providers, zap.NewNop())
	results := svc.SyncAll(context.Background())

	require.Len(t, results, 1)
	assert.Error(t, results[0].Error)
}
