package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// OAuthConfig builds the oauth2 configuration for the Microsoft identity
// platform. The device flow needs no client secret or redirect URI.
func OAuthConfig(clientID, tenant string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Endpoint: microsoft.AzureADEndpoint(tenant),
		Scopes:   scopes,
	}
}

// DevicePrompt is called once the device authorization has been initiated,
// with the URL the user must visit and the code to enter there.
type DevicePrompt func(verificationURI, userCode string)

// Login runs the OAuth2 device authorization flow: it requests a device
// code, shows it to the user via prompt, blocks until the grant is approved
// (or ctx expires), then stores the resulting token in cache.
func Login(ctx context.Context, cfg *oauth2.Config, cache *TokenCache, prompt DevicePrompt) (*oauth2.Token, error) {
	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("request device code: %w", err)
	}

	prompt(resp.VerificationURI, resp.UserCode)

	token, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("wait for device grant: %w", err)
	}

	if err := cache.Save(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return token, nil
}
