package domain

import "errors"

// Domain errors shared across the application. Lower layers wrap these so
// callers can classify failures with errors.Is without knowing about HTTP.
var (
	// ErrInvalidInput indicates a malformed or empty user-supplied value,
	// such as a sharing URL that cannot be encoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates the provider rejected the access token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound indicates the share reference or item does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrTransient indicates a server-side or throttling failure that the
	// caller may retry with backoff.
	ErrTransient = errors.New("transient server error")

	// ErrMalformedResponse indicates a success response that lacks the
	// fields required to proceed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotAuthenticated indicates no usable credentials are available
	// and the user must sign in first.
	ErrNotAuthenticated = errors.New("not authenticated")
)
