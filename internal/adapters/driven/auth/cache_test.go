package auth

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

func tempCache(t *testing.T) *TokenCache {
	t.Helper()
	return NewTokenCache(filepath.Join(t.TempDir(), "token.json"))
}

func TestTokenCache_SaveLoad(t *testing.T) {
	cache := tempCache(t)

	saved := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, cache.Save(saved))

	loaded, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.Equal(t, saved.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, saved.TokenType, loaded.TokenType)
	assert.True(t, saved.Expiry.Equal(loaded.Expiry))
}

func TestTokenCache_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	cache := tempCache(t)
	require.NoError(t, cache.Save(&oauth2.Token{AccessToken: "secret"}))

	info, err := os.Stat(cache.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenCache_LoadMissing(t *testing.T) {
	cache := tempCache(t)

	_, err := cache.Load()

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestTokenCache_LoadEmptyToken(t *testing.T) {
	cache := tempCache(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cache.Path()), 0o700))
	require.NoError(t, os.WriteFile(cache.Path(), []byte(`{}`), 0o600))

	_, err := cache.Load()

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestTokenCache_LoadCorrupt(t *testing.T) {
	cache := tempCache(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cache.Path()), 0o700))
	require.NoError(t, os.WriteFile(cache.Path(), []byte("not json"), 0o600))

	_, err := cache.Load()

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestTokenCache_Clear(t *testing.T) {
	cache := tempCache(t)
	require.NoError(t, cache.Save(&oauth2.Token{AccessToken: "access"}))

	require.NoError(t, cache.Clear())
	_, err := cache.Load()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	// Clearing again is a no-op, not an error.
	assert.NoError(t, cache.Clear())
}
