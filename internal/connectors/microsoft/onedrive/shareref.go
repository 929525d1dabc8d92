package onedrive

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

// shareRefPrefix tags URL-form share references. The Shares API also accepts
// raw ID-form references ("s!..."), which this tool never produces.
const shareRefPrefix = "u!"

// EncodeShareURL encodes a sharing URL for the Microsoft Graph Shares API.
// The API requires the raw URL bytes as padding-free URL-safe base64 with a
// "u!" prefix. The function encodes whatever it is given; any validation of
// link shape or host is the caller's concern.
func EncodeShareURL(sharingURL string) (string, error) {
	if sharingURL == "" {
		return "", fmt.Errorf("%w: empty sharing URL", domain.ErrInvalidInput)
	}
	return shareRefPrefix + base64.RawURLEncoding.EncodeToString([]byte(sharingURL)), nil
}

// DecodeShareRef reverses EncodeShareURL, recovering the original sharing
// URL from a "u!" share reference.
func DecodeShareRef(ref string) (string, error) {
	encoded, ok := strings.CutPrefix(ref, shareRefPrefix)
	if !ok {
		return "", fmt.Errorf("%w: share reference missing %q prefix", domain.ErrInvalidInput, shareRefPrefix)
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: share reference is not valid base64url", domain.ErrInvalidInput)
	}
	return string(raw), nil
}

// shareHosts are the hosts OneDrive hands out sharing links on.
var shareHosts = []string{
	"onedrive.live.com",
	"1drv.ms",
	"onedrive.com",
}

// IsOneDriveHost reports whether rawURL points at a known OneDrive sharing
// host. The codec itself never validates; the CLI uses this to reject
// obviously wrong URLs before spending a network round trip on them.
func IsOneDriveHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range shareHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
