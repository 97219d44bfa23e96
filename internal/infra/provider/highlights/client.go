// Package highlights implements the match-highlights provider client.
package highlights

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"arena-feed-service/internal/domain"
	"arena-feed-service/internal/infra/provider"
)

// Endpoint is the API path for the highlights feed.
const Endpoint = "/api/highlights"

// ProviderName identifies this provider in logs and in the videos
// table's provider_id column.
const ProviderName = "highlights"

// Client implements domain.HighlightProvider over HTTP with retries
// and a circuit breaker.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new highlights provider client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   ProviderName,
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response](ProviderName, cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves all currently available highlights.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Highlight, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("%s returned status %d", c.name, r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("highlights fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from %s: %w", c.name, err)
	}

	result := resp.Result().(*Response)
	out := make([]*domain.Highlight, 0, len(result.Highlights))
	for _, item := range result.Highlights {
		out = append(out, item.ToDomain(c.name))
	}

	c.logger.Info("highlights fetch completed",
		zap.Int("count", len(out)),
	)

	return out, nil
}

// HealthCheck verifies the provider is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
