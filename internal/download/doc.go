// Package download fetches image files concurrently with retry and
// skip-if-exists behavior, reporting per-file progress events.
package download
