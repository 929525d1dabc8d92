// Package cli defines the drivealbum command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/halcyon-labs/drivealbum-cli/internal/adapters/driven/auth"
	"github.com/halcyon-labs/drivealbum-cli/internal/adapters/driven/config/file"
	"github.com/halcyon-labs/drivealbum-cli/internal/adapters/driving/tui"
	"github.com/halcyon-labs/drivealbum-cli/internal/connectors/microsoft"
	"github.com/halcyon-labs/drivealbum-cli/internal/connectors/microsoft/onedrive"
	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
	"github.com/halcyon-labs/drivealbum-cli/internal/download"
	"github.com/halcyon-labs/drivealbum-cli/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	flagOutput      string
	flagConcurrent  int
	flagRetries     int
	flagNoRecursive bool
	flagNoProgress  bool
	flagConfig      string
)

// rootCmd is the base command: downloading an album is the primary action.
var rootCmd = &cobra.Command{
	Use:   "drivealbum <album-url>",
	Short: "Download images from shared OneDrive albums",
	Long: `drivealbum downloads every image from a shared OneDrive album or folder.

Give it the sharing link you received and it resolves the album through the
Microsoft Graph Shares API, walks its folders and fetches the images
concurrently. Files that already exist locally are skipped, so re-running
the same link resumes an interrupted download.

Examples:
  drivealbum "https://1drv.ms/f/s!AkX..."
  drivealbum -o ~/Pictures -c 10 "https://onedrive.live.com/?id=..."`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDownload,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.drivealbum/config.toml)")

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (default ./downloads)")
	rootCmd.Flags().IntVarP(&flagConcurrent, "concurrent", "c", 0, "max concurrent downloads (default 5)")
	rootCmd.Flags().IntVarP(&flagRetries, "retries", "r", 0, "download attempts per image (default 3)")
	rootCmd.Flags().BoolVar(&flagNoRecursive, "no-recursive", false, "do not descend into subfolders")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the interactive progress display")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}

func loadSettings() (file.Settings, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = file.DefaultSettingsPath()
		if err != nil {
			return file.DefaultSettings(), err
		}
	}
	return file.LoadSettings(path)
}

func newTokenProvider(settings file.Settings) (*auth.Provider, error) {
	tokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	cfg := auth.OAuthConfig(settings.OAuth.ClientID, settings.OAuth.Tenant, settings.OAuth.Scopes)
	return auth.NewProvider(cfg, auth.NewTokenCache(tokenPath)), nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	albumURL := args[0]

	if !onedrive.IsOneDriveHost(albumURL) {
		return fmt.Errorf("%w: %q is not a OneDrive sharing URL", domain.ErrInvalidInput, albumURL)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		settings.Download.OutputDir = flagOutput
	}
	if cmd.Flags().Changed("concurrent") {
		settings.Download.Concurrency = flagConcurrent
	}
	if cmd.Flags().Changed("retries") {
		settings.Download.Retries = flagRetries
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	provider, err := newTokenProvider(settings)
	if err != nil {
		return err
	}
	if !provider.IsAuthenticated() {
		return fmt.Errorf("%w: run 'drivealbum auth login' first", domain.ErrNotAuthenticated)
	}

	shareRef, err := onedrive.EncodeShareURL(albumURL)
	if err != nil {
		return err
	}

	clientCfg := onedrive.DefaultConfig()
	clientCfg.Timeout = settings.Download.Timeout()
	client := onedrive.NewClient(clientCfg, provider)

	albumName, images, err := enumerateAlbum(ctx, client, shareRef)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return fmt.Errorf("%w (try 'drivealbum auth login' again)", err)
		}
		return err
	}

	fmt.Printf("Album: %s (%d images)\n", albumName, len(images))
	if len(images) == 0 {
		fmt.Println("No images found.")
		return nil
	}

	opts := download.Options{
		OutputDir:   filepath.Join(settings.Download.OutputDir, download.SanitizeFilename(albumName)),
		Concurrency: settings.Download.Concurrency,
		Retries:     settings.Download.Retries,
		Timeout:     settings.Download.Timeout(),
	}

	var results []download.Result
	if interactiveProgress() {
		results, err = downloadWithTUI(ctx, opts, albumName, images)
	} else {
		results, err = downloadPlain(ctx, opts, images)
	}
	if err != nil {
		return err
	}

	printSummary(opts.OutputDir, download.Summarize(results))
	for _, r := range results {
		if !r.Success && !r.Skipped {
			logger.Debug("failed: %s: %v", r.Name, r.Err)
		}
	}
	// Individual download failures are reported above but do not make the
	// whole run fail: everything fetched so far is on disk and usable.
	return nil
}

// enumerateAlbum resolves the share and lists its images. Consumer shares
// sometimes reject item access by path while still allowing the share's own
// children listing, so a forbidden or missing album falls back to that.
func enumerateAlbum(ctx context.Context, client *onedrive.Client, shareRef string) (string, []domain.ImageRecord, error) {
	albumName := onedrive.DefaultAlbumName

	handle, err := client.ResolveAlbum(ctx, shareRef)
	if err == nil {
		albumName = handle.Name
		if handle.ChildCount > 0 {
			logger.Info("resolved album %q with %d top-level items", handle.Name, handle.ChildCount)
		}
		images, enumErr := client.EnumerateImages(ctx, handle, !flagNoRecursive)
		if enumErr == nil {
			return albumName, images, nil
		}
		// Only a failure to list the album root itself means the whole
		// drive listing is off limits. A failure deeper in the walk means
		// part of the album is unreadable, and truncating to the share's
		// top level would hide that.
		if !rootListingFailed(enumErr, handle.ItemID) {
			return "", nil, enumErr
		}
		err = enumErr
	}

	if errors.Is(err, microsoft.ErrForbidden) || errors.Is(err, domain.ErrNotFound) {
		logger.Info("falling back to direct share listing: %v", err)
		images, fallbackErr := client.EnumerateSharedImages(ctx, shareRef)
		if fallbackErr != nil {
			return "", nil, fallbackErr
		}
		return albumName, images, nil
	}
	return "", nil, err
}

func rootListingFailed(err error, rootItemID string) bool {
	var listErr *onedrive.ListingError
	return errors.As(err, &listErr) && listErr.ItemID == rootItemID
}

func interactiveProgress() bool {
	return !flagNoProgress && term.IsTerminal(int(os.Stdout.Fd()))
}

func downloadWithTUI(ctx context.Context, opts download.Options, album string, images []domain.ImageRecord) ([]download.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.New(album, len(images), cancel))
	manager := download.NewManager(opts, func(e download.Event) {
		program.Send(tui.EventMsg(e))
	})

	var results []download.Result
	var dlErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, dlErr = manager.DownloadAll(ctx, images)
		program.Send(tui.DoneMsg{Stats: download.Summarize(results), Err: dlErr})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress display: %w", err)
	}
	// Run returns on DoneMsg or user interrupt; in the latter case the
	// cancelled context unblocks the manager.
	<-done
	return results, dlErr
}

func downloadPlain(ctx context.Context, opts download.Options, images []domain.ImageRecord) ([]download.Result, error) {
	manager := download.NewManager(opts, func(e download.Event) {
		switch e.Level {
		case download.LevelVerbose:
			logger.Debug("%s", e.Message)
		case download.LevelWarning:
			logger.Warn("%s", e.Message)
		case download.LevelError:
			fmt.Fprintln(os.Stderr, e.Message)
		default:
			fmt.Println(e.Message)
		}
	})
	return manager.DownloadAll(ctx, images)
}

func printSummary(outputDir string, stats download.Stats) {
	fmt.Println()
	fmt.Printf("Downloaded: %d\n", stats.Downloaded)
	fmt.Printf("Skipped:    %d\n", stats.Skipped)
	if stats.Failed > 0 {
		fmt.Printf("Failed:     %d\n", stats.Failed)
	}
	fmt.Printf("Total size: %s\n", download.FormatSize(stats.TotalBytes))
	fmt.Printf("Saved to:   %s\n", outputDir)
}
