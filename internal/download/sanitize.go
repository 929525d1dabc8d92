package download

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Filesystem limit for a single path component on common filesystems.
const maxFilenameLength = 255

func invalidFilenameChar(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return r < 0x20
}

// SanitizeFilename replaces characters that are invalid on common
// filesystems with underscores, trims leading and trailing dots and
// spaces, and truncates over-long names while preserving the extension.
// An empty result becomes "unnamed".
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if invalidFilenameChar(r) {
			return '_'
		}
		return r
	}, name)

	sanitized = strings.Trim(sanitized, ". ")

	if len(sanitized) > maxFilenameLength {
		ext := filepath.Ext(sanitized)
		if len(ext) >= maxFilenameLength {
			ext = ""
		}
		stem := strings.TrimSuffix(sanitized, ext)
		cut := maxFilenameLength - len(ext)
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(stem[cut]) {
			cut--
		}
		sanitized = stem[:cut] + ext
	}

	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}

// FormatSize renders a byte count as a human-readable string, e.g. "1.50 MB".
func FormatSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", int64(size), units[unit])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
