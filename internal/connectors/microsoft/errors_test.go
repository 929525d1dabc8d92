package microsoft

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, expected: ErrUnauthorised},
		{name: "forbidden", statusCode: http.StatusForbidden, expected: ErrForbidden},
		{name: "not found", statusCode: http.StatusNotFound, expected: ErrNotFound},
		{name: "rate limited", statusCode: http.StatusTooManyRequests, expected: ErrRateLimited},
		{name: "bad request", statusCode: http.StatusBadRequest, expected: ErrBadRequest},
		{name: "internal server error", statusCode: http.StatusInternalServerError, expected: ErrServerError},
		{name: "bad gateway", statusCode: http.StatusBadGateway, expected: ErrServerError},
		{name: "service unavailable", statusCode: http.StatusServiceUnavailable, expected: ErrServerError},
		{name: "ok", statusCode: http.StatusOK, expected: nil},
		{name: "no content", statusCode: http.StatusNoContent, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.statusCode)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   bool
	}{
		{name: "too many requests", statusCode: http.StatusTooManyRequests, expected: true},
		{name: "internal server error", statusCode: http.StatusInternalServerError, expected: true},
		{name: "gateway timeout", statusCode: http.StatusGatewayTimeout, expected: true},
		{name: "unauthorized", statusCode: http.StatusUnauthorized, expected: false},
		{name: "not found", statusCode: http.StatusNotFound, expected: false},
		{name: "ok", statusCode: http.StatusOK, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.statusCode))
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsUnauthorised(http.StatusUnauthorized))
	assert.False(t, IsUnauthorised(http.StatusForbidden))
	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.False(t, IsRateLimited(http.StatusOK))
	assert.True(t, IsNotFound(http.StatusNotFound))
	assert.False(t, IsNotFound(http.StatusGone))
}
