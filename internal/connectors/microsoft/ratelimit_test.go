package microsoft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter()

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
}

func TestNewRateLimiterWithConfig(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerSecond: 5.0,
		BurstSize:         10,
	}

	rl := NewRateLimiterWithConfig(cfg)

	require.NotNil(t, rl)
	assert.NotNil(t, rl.limiter)
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter()

	err := rl.Wait(context.Background())

	assert.NoError(t, err)
}

func TestRateLimiter_Wait_ContextCancelled(t *testing.T) {
	rl := NewRateLimiter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := rl.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter()

	// First few requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should be allowed", i)
	}
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	rl := NewRateLimiter()

	rl.RecordRateLimitError(1)

	// Backoff window is active, nothing allowed until it passes
	assert.False(t, rl.Allow())
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	rl := NewRateLimiter()

	// Zero or negative Retry-After falls back to the default backoff
	rl.RecordRateLimitError(0)

	assert.False(t, rl.Allow())
}
