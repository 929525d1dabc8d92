package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/drivealbum-cli/internal/adapters/driven/auth"
	"github.com/halcyon-labs/drivealbum-cli/internal/connectors/microsoft"
	"github.com/halcyon-labs/drivealbum-cli/internal/core/domain"
	"github.com/halcyon-labs/drivealbum-cli/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Microsoft account sign-in",
	Long: `Sign in to the Microsoft account that can access the shared albums.

Authentication uses the OAuth device flow: you open a verification URL in
any browser, enter a short code, and the token is stored locally in
~/.drivealbum/token.json. Tokens refresh automatically on later runs.

Examples:
  drivealbum auth login
  drivealbum auth status
  drivealbum auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the device code flow",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in account",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE:  runAuthLogout,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	tokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		return err
	}

	cfg := auth.OAuthConfig(settings.OAuth.ClientID, settings.OAuth.Tenant, settings.OAuth.Scopes)
	cache := auth.NewTokenCache(tokenPath)

	token, err := auth.Login(ctx, cfg, cache, func(verificationURI, userCode string) {
		fmt.Printf("To sign in, open %s and enter the code %s\n", verificationURI, userCode)
		fmt.Println("Waiting for you to complete sign-in...")
	})
	if err != nil {
		return err
	}

	if info, err := microsoft.GetUserInfo(ctx, token.AccessToken); err == nil {
		fmt.Printf("Signed in as %s\n", info.GetUserEmail())
	} else {
		logger.Debug("could not fetch profile: %v", err)
		fmt.Println("Signed in.")
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	provider, err := newTokenProvider(settings)
	if err != nil {
		return err
	}

	token, err := provider.GetToken(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			fmt.Println("Not signed in. Run 'drivealbum auth login' to sign in.")
			return nil
		}
		return err
	}

	info, err := microsoft.GetUserInfo(ctx, token)
	if err != nil {
		fmt.Println("Signed in, but the profile could not be fetched.")
		logger.Debug("profile fetch: %v", err)
		return nil
	}
	fmt.Printf("Signed in as %s (%s)\n", info.GetUserEmail(), info.DisplayName)
	if tokenPath, err := auth.DefaultTokenPath(); err == nil {
		fmt.Printf("Token stored at %s\n", tokenPath)
	}
	return nil
}

func runAuthLogout(_ *cobra.Command, _ []string) error {
	tokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		return err
	}
	if err := auth.NewTokenCache(tokenPath).Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
