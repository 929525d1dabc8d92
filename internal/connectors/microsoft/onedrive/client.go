package onedrive

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/halcyon-labs/drivealbum-cli/internal/connectors/microsoft"
	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
	"github.com/halcyon-labs/drivealbum-cli/internal/core/ports/driven"
)

// Client talks to the Microsoft Graph OneDrive endpoints. It holds no state
// beyond its configuration; every call is parameterised by its arguments.
type Client struct {
	config        *Config
	tokenProvider driven.TokenProvider
	rateLimiter   *microsoft.RateLimiter
	httpClient    *http.Client
}

// NewClient creates a new OneDrive client.
func NewClient(cfg *Config, tokenProvider driven.TokenProvider) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		config:        cfg,
		tokenProvider: tokenProvider,
		rateLimiter:   microsoft.NewRateLimiter(),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
	}
}

// doRequest performs an authenticated GET against the Graph API, honouring
// the rate limiter. A 429 response records its Retry-After backoff before
// being returned to the caller.
func (c *Client) doRequest(ctx context.Context, url string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}

	if microsoft.IsRateLimited(resp.StatusCode) {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.rateLimiter.RecordRateLimitError(retryAfter)
	}

	return resp, nil
}

// wrapStatus maps a non-success Graph status code onto the domain error
// taxonomy, keeping the Graph-level sentinel in the chain for callers that
// need the finer distinction (e.g. forbidden vs. expired token).
func wrapStatus(statusCode int) error {
	graphErr := microsoft.WrapError(statusCode)
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, graphErr)
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, graphErr)
	case microsoft.IsRetryable(statusCode):
		return fmt.Errorf("%w: %w", domain.ErrTransient, graphErr)
	case graphErr != nil:
		return graphErr
	default:
		return fmt.Errorf("unexpected status %d", statusCode)
	}
}
