package download

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
)

const userAgent = "drivealbum-cli"

// Level indicates the severity/type of a progress message.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Event represents a download progress update. Result is set when the
// event marks the completion (success, skip or failure) of one file.
type Event struct {
	Message string
	Level   Level
	Result  *Result
}

// Result is the outcome of downloading a single image.
type Result struct {
	Name    string // sanitized path relative to the output directory
	Success bool
	Skipped bool // file already existed
	Size    int64
	Err     error
}

// Stats aggregates the outcomes of a download run.
type Stats struct {
	Total      int
	Downloaded int
	Skipped    int
	Failed     int
	TotalBytes int64
}

// Successful returns the number of files present on disk after the run.
func (s Stats) Successful() int {
	return s.Downloaded + s.Skipped
}

// Options configures a download Manager. Zero fields fall back to
// defaults matching the config file defaults.
type Options struct {
	OutputDir   string
	Concurrency int           // max parallel downloads, default 5
	Retries     int           // attempts per file, default 3
	Timeout     time.Duration // per-file HTTP timeout, default 30s
	Cooldown    time.Duration // base retry backoff, doubled per attempt
}

func (o Options) withDefaults() Options {
	if o.Concurrency < 1 {
		o.Concurrency = 5
	}
	if o.Retries < 1 {
		o.Retries = 3
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Cooldown <= 0 {
		o.Cooldown = time.Second
	}
	return o
}

// Manager coordinates concurrent image downloads.
type Manager struct {
	opts       Options
	httpClient *http.Client
	onProgress func(Event)

	completed atomic.Int32
	bytes     atomic.Int64
}

// NewManager creates a download Manager. onProgress may be nil.
func NewManager(opts Options, onProgress func(Event)) *Manager {
	opts = opts.withDefaults()
	return &Manager{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		onProgress: onProgress,
	}
}

// Progress returns the number of files completed so far (including skips
// and failures) and the bytes written. Safe to call concurrently with a
// running DownloadAll.
func (m *Manager) Progress() (completed int32, bytes int64) {
	return m.completed.Load(), m.bytes.Load()
}

// DownloadAll fetches every image into the output directory, at most
// Concurrency at a time. Individual failures are reported in their Result
// and do not stop the other downloads; the returned error is non-nil only
// when ctx is cancelled.
func (m *Manager) DownloadAll(ctx context.Context, images []domain.ImageRecord) ([]Result, error) {
	if err := os.MkdirAll(m.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	results := make([]Result, len(images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)

	for i, img := range images {
		g.Go(func() error {
			results[i] = m.downloadOne(ctx, img)
			m.completed.Add(1)
			if results[i].Success {
				m.bytes.Add(results[i].Size)
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("downloads interrupted: %w", err)
	}
	return results, nil
}

// Summarize aggregates results into run statistics.
func Summarize(results []Result) Stats {
	stats := Stats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			stats.Skipped++
			stats.TotalBytes += r.Size
		case r.Success:
			stats.Downloaded++
			stats.TotalBytes += r.Size
		default:
			stats.Failed++
		}
	}
	return stats
}

func (m *Manager) downloadOne(ctx context.Context, img domain.ImageRecord) Result {
	relPath := sanitizeRelPath(img)
	dest := filepath.Join(m.opts.OutputDir, relPath)

	if info, err := os.Stat(dest); err == nil {
		result := Result{Name: relPath, Success: true, Skipped: true, Size: info.Size()}
		m.progress(Event{
			Message: fmt.Sprintf("Skipping existing: %s", relPath),
			Level:   LevelVerbose,
			Result:  &result,
		})
		return result
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		result := Result{Name: relPath, Err: fmt.Errorf("create directory: %w", err)}
		m.progress(Event{
			Message: fmt.Sprintf("Error downloading %s: %v", relPath, result.Err),
			Level:   LevelError,
			Result:  &result,
		})
		return result
	}

	var size int64
	var err error
	for attempt := 0; attempt < m.opts.Retries; attempt++ {
		size, err = m.fetch(ctx, img.DownloadURL, dest)
		if err == nil || ctx.Err() != nil {
			break
		}
		if attempt < m.opts.Retries-1 {
			m.progress(Event{
				Message: fmt.Sprintf("Retry %d/%d for %s: %v", attempt+1, m.opts.Retries-1, relPath, err),
				Level:   LevelWarning,
			})
			m.waitForRetry(ctx, attempt)
		}
	}

	if err != nil {
		result := Result{Name: relPath, Err: err}
		m.progress(Event{
			Message: fmt.Sprintf("Error downloading %s: %v", relPath, err),
			Level:   LevelError,
			Result:  &result,
		})
		return result
	}

	result := Result{Name: relPath, Success: true, Size: size}
	m.progress(Event{
		Message: fmt.Sprintf("Downloaded: %s (%s)", relPath, FormatSize(size)),
		Level:   LevelSuccess,
		Result:  &result,
	})
	return result
}

// fetch streams the URL to dest via a temp file in the same directory, so
// a failed transfer never leaves a truncated file under the final name.
func (m *Manager) fetch(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	tmp := dest + "." + uuid.NewString() + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return written, nil
}

func (m *Manager) waitForRetry(ctx context.Context, attempt int) {
	cooldown := time.Duration(float64(m.opts.Cooldown) * math.Pow(2, float64(attempt)))
	select {
	case <-ctx.Done():
	case <-time.After(cooldown):
	}
}

func (m *Manager) progress(event Event) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func sanitizeRelPath(img domain.ImageRecord) string {
	parts := make([]string, 0, len(img.FolderPath)+1)
	for _, folder := range img.FolderPath {
		parts = append(parts, SanitizeFilename(folder))
	}
	parts = append(parts, SanitizeFilename(img.Name))
	return filepath.Join(parts...)
}
