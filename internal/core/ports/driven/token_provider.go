// Package driven defines the driven ports: narrow interfaces the core
// depends on, implemented by adapters.
package driven

import "context"

// TokenProvider supplies access tokens for authenticated Graph API calls.
// Implementations handle caching and refresh transparently; the core has no
// knowledge of OAuth internals, token storage, or refresh timing.
type TokenProvider interface {
	// GetToken returns a valid access token, refreshing a cached one if it
	// has expired. Fails with domain.ErrNotAuthenticated when no usable
	// credentials exist.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether credentials are available without
	// performing any network calls.
	IsAuthenticated() bool
}
