package onedrive

import (
	"time"

	"github.com/halcyon-labs/drivealbum-cli/internal/connectors/microsoft"
)

// Config holds OneDrive client configuration.
type Config struct {
	// BaseURL is the Graph API base URL. Overridable for tests.
	BaseURL string
	// PageSize is the $top value for children listing requests.
	PageSize int64
	// Timeout bounds each individual Graph request.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  microsoft.GraphBaseURL,
		PageSize: 200,
		Timeout:  30 * time.Second,
	}
}
