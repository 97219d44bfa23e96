package highlights

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arena-feed-service/internal/infra/provider"
)

const testEndpoint = "https://highlights.example.com/api/highlights"

func newTestClient() *Client {
	cfg := provider.ClientConfig{
		BaseURL: "https://highlights.example.com",
		Timeout: 5 * time.Second,
		Retry: provider.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: provider.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockSuccessResponse() Response {
	return Response{
		Highlights: []HighlightItem{
			{
				ID:          "hl-1",
				Title:       "Triple overtime clutch",
				Game:        "Valorant",
				Mode:        "ranked",
				Metrics:     Metrics{Views: 10000, Likes: 500, DurationSeconds: 42},
				PublishedAt: "2026-08-01T10:00:00Z",
			},
			{
				ID:          "hl-2",
				Title:       "Aerial double tap",
				Game:        "Rocket League",
				Metrics:     Metrics{Views: 5000, Likes: 250, DurationSeconds: 30},
				PublishedAt: "2026-08-02T12:00:00Z",
			},
		},
		Pagination: Pagination{Total: 2, Page: 1, PerPage: 10},
	}
}

func TestFetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockSuccessResponse()))

	client := newTestClient()
	got, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ProviderName, got[0].ProviderID)
	assert.Equal(t, "hl-1", got[0].ExternalID)
	assert.Equal(t, "Triple overtime clutch", got[0].Title)
	assert.Equal(t, "Valorant", got[0].Game)
	assert.Equal(t, 10000, got[0].ViewCount)
	assert.Equal(t, 500, got[0].LikeCount)
	assert.Equal(t, 42, got[0].DurationSeconds)

	expectedTime, _ := time.Parse(time.RFC3339, "2026-08-01T10:00:00Z")
	assert.Equal(t, expectedTime, got[0].PublishedAt)
}

func TestFetch_EmptyResponse(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, Response{}))

	client := newTestClient()
	got, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetch_HTTPErrors(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"400 Bad Request", 400},
		{"404 Not Found", 404},
		{"500 Internal Server Error", 500},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			got, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	got, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "fetching from highlights")
}

func TestFetch_ContextCancellation(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			time.Sleep(200 * time.Millisecond)

			return httpmock.NewJsonResponse(200, mockSuccessResponse())
		})

	client := newTestClient()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	got, err := client.Fetch(ctx)

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestFetch_CircuitBreakerOpens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	// Breaker should be open now and fail fast without an HTTP call
	start := time.Now()
	_, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

func TestFetch_RetriesThenSucceeds(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}

			return httpmock.NewJsonResponse(200, mockSuccessResponse())
		})

	client := newTestClient()
	got, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, callCount, "Should retry twice and succeed on 3rd attempt")
}

func TestFetch_InvalidDateFormat(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{
		Highlights: []HighlightItem{
			{
				ID:          "hl-1",
				Title:       "Test",
				Metrics:     Metrics{Views: 100, Likes: 10},
				PublishedAt: "invalid-date",
			},
		},
	}

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	got, err := client.Fetch(context.Background())

	// Still ingests; zero time ages the row out of the feed
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].PublishedAt.IsZero())
}

func TestName(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	assert.Equal(t, "highlights", client.Name())
}

func TestHealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://highlights.example.com/health",
		httpmock.NewStringResponder(200, "ok"))

	client := newTestClient()
	assert.NoError(t, client.HealthCheck(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder("GET", "https://highlights.example.com/health",
		httpmock.NewStringResponder(503, "down"))

	assert.Error(t, client.HealthCheck(context.Background()))
}
