// Package auth provides OAuth token acquisition and persistence for the
// Microsoft identity platform, backed by the device authorization flow.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

// TokenCache persists the OAuth token between runs as a JSON file.
// The file is created with 0600 permissions since it holds credentials.
type TokenCache struct {
	path string
}

// NewTokenCache creates a cache backed by the given file path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// DefaultTokenPath returns the default token location,
// ~/.drivealbum/token.json.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".drivealbum", "token.json"), nil
}

// Path returns the file path backing the cache.
func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cached token. Returns domain.ErrNotAuthenticated when no
// token has been stored yet.
func (c *TokenCache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no stored token at %s", domain.ErrNotAuthenticated, c.path)
		}
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token cache at %s is empty", domain.ErrNotAuthenticated, c.path)
	}
	return &token, nil
}

// Save writes the token to disk, creating the parent directory if needed.
func (c *TokenCache) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty cache is not an error.
func (c *TokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}
