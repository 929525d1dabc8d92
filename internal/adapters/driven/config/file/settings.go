// Package file loads and stores drivealbum settings as a TOML file.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Registered application (client) ID used when the user has not supplied
// their own. The device flow needs no client secret.
const DefaultClientID = "6731de76-14a6-49ae-97bc-6eba6914391e"

// Settings holds the user-tunable configuration, stored in
// ~/.drivealbum/config.toml.
type Settings struct {
	OAuth    OAuthSettings    `toml:"oauth"`
	Download DownloadSettings `toml:"download"`
}

// OAuthSettings configures the Microsoft identity platform client.
type OAuthSettings struct {
	ClientID string   `toml:"client_id"`
	Tenant   string   `toml:"tenant"`
	Scopes   []string `toml:"scopes"`
}

// DownloadSettings configures the download pipeline.
type DownloadSettings struct {
	OutputDir      string `toml:"output_dir"`
	Concurrency    int    `toml:"concurrency"`
	Retries        int    `toml:"retries"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the per-request timeout as a duration.
func (d DownloadSettings) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		OAuth: OAuthSettings{
			ClientID: DefaultClientID,
			Tenant:   "consumers",
			Scopes:   []string{"Files.Read.All", "offline_access"},
		},
		Download: DownloadSettings{
			OutputDir:      "./downloads",
			Concurrency:    5,
			Retries:        3,
			TimeoutSeconds: 30,
		},
	}
}

// DefaultSettingsPath returns ~/.drivealbum/config.toml.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".drivealbum", "config.toml"), nil
}

// LoadSettings reads settings from path, filling any field the file does
// not set with its default. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their values.
	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes settings to path with restricted permissions.
func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings the download pipeline cannot honor. Retries
// counts attempts per file, so it must be at least 1; a lower value would
// otherwise be silently replaced by the pipeline's default.
func (s Settings) Validate() error {
	if s.Download.Concurrency < 1 {
		return fmt.Errorf("download.concurrency must be at least 1, got %d", s.Download.Concurrency)
	}
	if s.Download.Retries < 1 {
		return fmt.Errorf("download.retries must be at least 1, got %d", s.Download.Retries)
	}
	if s.Download.TimeoutSeconds < 1 {
		return fmt.Errorf("download.timeout_seconds must be at least 1, got %d", s.Download.TimeoutSeconds)
	}
	return nil
}
