package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
	"github.com/halcyon-labs/drivealbum-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/drivealbum-cli/internal/logger"
)

// Ensure Provider implements the TokenProvider interface.
var _ driven.TokenProvider = (*Provider)(nil)

// Provider supplies access tokens from the cache, refreshing them through
// the OAuth endpoint when expired. Refreshed tokens are written back to the
// cache so later runs start from the newest refresh token.
type Provider struct {
	cfg   *oauth2.Config
	cache *TokenCache

	mu     sync.Mutex
	source oauth2.TokenSource
	last   *oauth2.Token
}

// NewProvider creates a token provider backed by cfg and cache.
func NewProvider(cfg *oauth2.Config, cache *TokenCache) *Provider {
	return &Provider{cfg: cfg, cache: cache}
}

// GetToken returns a valid access token, refreshing if necessary.
// Returns domain.ErrNotAuthenticated when no token has been stored.
func (p *Provider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		stored, err := p.cache.Load()
		if err != nil {
			return "", err
		}
		p.last = stored
		// The source outlives any single request, so it is not bound
		// to the caller's context.
		p.source = p.cfg.TokenSource(context.Background(), stored)
	}

	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: refresh access token: %w", domain.ErrUnauthenticated, err)
	}

	if token.AccessToken != p.last.AccessToken {
		p.last = token
		if err := p.cache.Save(token); err != nil {
			// A stale cache only costs a refresh on the next run.
			logger.Warn("could not persist refreshed token: %v", err)
		}
	}
	return token.AccessToken, nil
}

// IsAuthenticated reports whether a stored token exists. It does not
// verify the token against the identity platform.
func (p *Provider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil {
		return true
	}
	_, err := p.cache.Load()
	return err == nil
}

// Logout clears the stored token and any in-memory state.
func (p *Provider) Logout() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.source = nil
	p.last = nil
	return p.cache.Clear()
}
