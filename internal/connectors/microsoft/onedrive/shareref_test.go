package onedrive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

func TestEncodeShareURL(t *testing.T) {
	ref, err := EncodeShareURL("https://1drv.ms/a/c/abc123/xyz")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "u!"))
	// Padding-free URL-safe base64: no '=', '+' or '/'
	assert.NotContains(t, ref, "=")
	assert.NotContains(t, ref, "+")
	assert.NotContains(t, ref[2:], "/")
}

func TestEncodeShareURL_Empty(t *testing.T) {
	_, err := EncodeShareURL("")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShareRef_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "short link", url: "https://1drv.ms/a/c/abc123/xyz"},
		{name: "long form", url: "https://onedrive.live.com/?id=ROOT&cid=0123456789ABCDEF"},
		{name: "album view", url: "https://onedrive.live.com/?view=8&photosData=%2Falbum%2FID"},
		{name: "query and fragment", url: "https://onedrive.com/x?a=1&b=2#frag"},
		{name: "non-ascii", url: "https://1drv.ms/f/s!Bilder-für-dich"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := EncodeShareURL(tt.url)
			require.NoError(t, err)

			decoded, err := DecodeShareRef(ref)
			require.NoError(t, err)
			assert.Equal(t, tt.url, decoded)
		})
	}
}

func TestDecodeShareRef_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "missing prefix", ref: "aHR0cHM6Ly8xZHJ2Lm1z"},
		{name: "wrong prefix", ref: "s!aHR0cHM6Ly8xZHJ2Lm1z"},
		{name: "bad base64", ref: "u!not*valid*base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeShareRef(tt.ref)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestIsOneDriveHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "1drv.ms short link", url: "https://1drv.ms/a/c/abc", expected: true},
		{name: "onedrive.live.com", url: "https://onedrive.live.com/?id=x", expected: true},
		{name: "onedrive.com", url: "https://onedrive.com/x", expected: true},
		{name: "mixed case host", url: "https://OneDrive.Live.com/?id=x", expected: true},
		{name: "other host", url: "https://example.com/x", expected: false},
		{name: "lookalike host", url: "https://evil1drv.ms.example.com/x", expected: false},
		{name: "not a url", url: "://", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsOneDriveHost(tt.url))
		})
	}
}
