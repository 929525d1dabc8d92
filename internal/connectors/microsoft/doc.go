// Package microsoft provides shared Microsoft Graph API support for the
// drivealbum CLI.
//
// This package provides:
//   - Error classification for Microsoft Graph API responses
//   - Rate limiting for Microsoft Graph API requests
//   - User profile lookup for the signed-in account
//
// Graph endpoints use the "consumers" tenant by default since shared photo
// albums live on personal OneDrive accounts; the tenant is configurable for
// Azure AD accounts.
//
// # Rate Limits
//
// Microsoft Graph allows approximately 10,000 requests per 10 minutes per
// app. This package implements conservative rate limiting to avoid hitting
// quotas; a 429 response additionally records a Retry-After backoff that
// subsequent requests honour.
package microsoft
