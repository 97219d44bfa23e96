package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/internal/domain"
	"arena-feed-service/internal/validator"
)

// stubStore implements domain.DataStore over fixed slices.
type stubStore struct {
	posts    []*domain.FeedItem
	videos   []*domain.FeedItem
	profiles []*domain.SearchResult
	err      error
}

func (s *stubStore) QueryPosts(context.Context, int) ([]*domain.FeedItem, error) {
	return s.posts, s.err
}

func (s *stubStore) QueryVideos(context.Context, int) ([]*domain.FeedItem, error) {
	return s.videos, s.err
}

func (s *stubStore) FollowedAuthors(context.Context, string) ([]string, error) {
	return nil, s.err
}

func (s *stubStore) GamePreferences(context.Context, string) ([]string, error) {
	return nil, s.err
}

func (s *stubStore) LikedItems(context.Context, string, []string) ([]string, error) {
	return nil, s.err
}

func (s *stubStore) SearchProfiles(context.Context, string, int) ([]*domain.SearchResult, error) {
	return s.profiles, s.err
}

func (s *stubStore) SearchPosts(context.Context, string, int) ([]*domain.SearchResult, error) {
	return nil, s.err
}

func (s *stubStore) SearchVideos(context.Context, string, int) ([]*domain.SearchResult, error) {
	return nil, s.err
}

func newTestApp(store *stubStore) *fiber.App {
	logger := zap.NewNop()
	v := validator.New()

	feedSvc := service.NewFeedService(store, nil, 0, logger)
	searchSvc := service.NewSearchService(store, logger)

	feedHandler := NewFeedHandler(feedSvc, v, logger)
	searchHandler := NewSearchHandler(searchSvc, v, logger)

	app := fiber.New()
	app.Get("/feed", feedHandler.Feed)
	app.Get("/search", searchHandler.Search)

	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()

	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&m))

	return m
}

func feedItem(id string, likes int, age time.Duration) *domain.FeedItem {
	return &domain.FeedItem{
		ID:        id,
		Kind:      domain.ItemKindPost,
		Title:     "Item " + id,
		LikeCount: likes,
		CreatedAt: time.Now().UTC().Add(-age),
		Author:    domain.Author{ID: "author-" + id},
	}
}

func TestFeedEndpoint_CursorMode(t *testing.T) {
	store := &stubStore{
		posts: []*domain.FeedItem{
			feedItem("p1", 100, time.Hour),
			feedItem("p2", 5, time.Hour),
		},
		videos: []*domain.FeedItem{
			feedItem("v1", 50, time.Hour),
		},
	}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/feed?limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)

	items, ok := body["items"].([]interface{})
	require.True(t, ok, "response must carry an items array")
	assert.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "p1", first["id"], "highest engagement ranks first")

	assert.Equal(t, true, body["hasMore"])
	assert.Equal(t, "v1", body["nextCursor"], "cursor points at the last returned item")
}

func TestFeedEndpoint_LastPageNullCursor(t *testing.T) {
	store := &stubStore{
		posts: []*domain.FeedItem{feedItem("p1", 10, time.Hour)},
	}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/feed?limit=20", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["hasMore"])

	cursor, present := body["nextCursor"]
	assert.True(t, present, "nextCursor key must be present")
	assert.Nil(t, cursor, "nextCursor must be explicit null on the last page")
}

func TestFeedEndpoint_PageMode(t *testing.T) {
	store := &stubStore{
		posts: []*domain.FeedItem{
			feedItem("p1", 30, time.Hour),
			feedItem("p2", 20, time.Hour),
			feedItem("p3", 10, time.Hour),
		},
	}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/feed?paginated=true&page=2&limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["totalPages"])
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["items"].([]interface{}), 1)
}

func TestFeedEndpoint_EmptyFeed(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "empty feed is not an error")

	body := decodeBody(t, resp.Body)
	assert.Len(t, body["items"].([]interface{}), 0)
	assert.Equal(t, false, body["hasMore"])
}

func TestFeedEndpoint_InvalidLimit(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed?limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestFeedEndpoint_StoreFailure(t *testing.T) {
	app := newTestApp(&stubStore{err: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestSearchEndpoint_Success(t *testing.T) {
	store := &stubStore{
		profiles: []*domain.SearchResult{
			{Type: domain.SearchTypeProfile, ID: "u1", Username: "smartking", FollowersCount: 500},
		},
	}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=smart", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, false, body["hasMore"])

	first := results[0].(map[string]interface{})
	assert.Equal(t, "smartking", first["username"])
	assert.Greater(t, first["relevance_score"].(float64), 0.0)
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/search", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint_ShortQuery(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint_WhitespacePaddedQuery(t *testing.T) {
	app := newTestApp(&stubStore{})

	// Two spaces pass the min=2 tag but trim below the minimum
	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=+a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "QUERY_TOO_SHORT", body["code"])
}

func TestSearchEndpoint_EmptyResults(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=nomatch", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "no matches is not an error")

	body := decodeBody(t, resp.Body)
	assert.Len(t, body["results"].([]interface{}), 0)
	assert.Equal(t, float64(0), body["total"])
}

func TestSearchEndpoint_StoreFailure(t *testing.T) {
	app := newTestApp(&stubStore{err: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=go", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
