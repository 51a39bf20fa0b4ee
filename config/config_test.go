package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 512, cfg.QRCacheSize)
	require.Equal(t, 365, cfg.AuditRetentionDays)
	require.Equal(t, 100, cfg.RateLimitRequest)
	require.Equal(t, 1, cfg.RateLimitWindow)
	require.False(t, cfg.SeedDemoData)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "250")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "5")
	t.Setenv("QR_CACHE_SIZE", "64")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := Load()

	require.Equal(t, 250, cfg.RateLimitRequest)
	require.Equal(t, 5, cfg.RateLimitWindow)
	require.Equal(t, 64, cfg.QRCacheSize)
	require.True(t, cfg.SeedDemoData)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "plenty")
	t.Setenv("AUDIT_RETENTION_DAYS", "")

	cfg := Load()

	require.Equal(t, 100, cfg.RateLimitRequest)
	require.Equal(t, 365, cfg.AuditRetentionDays)
}
