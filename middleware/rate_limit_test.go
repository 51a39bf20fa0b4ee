package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRateLimiterAppliesDefaults(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{
		Requests: 250,
		Window:   5 * time.Minute,
	}, StrategyIP)

	require.Equal(t, 250, rl.config.Requests)
	require.Equal(t, 5*time.Minute, rl.config.Window)
	require.Equal(t, "rate_limit", rl.config.KeyPrefix)
	require.Equal(t, "Rate limit exceeded", rl.config.ErrorMessage)
}

func TestNewRateLimiterKeepsCustomPrefix(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{
		Requests:     5,
		Window:       time.Minute,
		KeyPrefix:    "auth_rate_limit",
		ErrorMessage: "Too many authentication attempts.",
	}, StrategyIP)

	require.Equal(t, "auth_rate_limit", rl.config.KeyPrefix)
	require.Equal(t, "Too many authentication attempts.", rl.config.ErrorMessage)
}

func TestDefaultLimiterHonorsConfiguredValues(t *testing.T) {
	t.Parallel()

	rl := newDefaultLimiter(nil, 250, 5*time.Minute)
	require.Equal(t, 250, rl.config.Requests)
	require.Equal(t, 5*time.Minute, rl.config.Window)
	require.Equal(t, []string{"/health"}, rl.config.SkipPaths)
}

func TestDefaultLimiterFallsBackOnZeroValues(t *testing.T) {
	t.Parallel()

	// Misconfigured (zero) values must not disable the limiter
	rl := newDefaultLimiter(nil, 0, 0)
	require.Equal(t, 100, rl.config.Requests)
	require.Equal(t, time.Minute, rl.config.Window)
}
