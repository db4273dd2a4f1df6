package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 50, cfg.GlobalLeaderboardSize)
	assert.Equal(t, 10, cfg.CommunityLeaderboardSize)
	assert.Equal(t, 60*time.Second, cfg.LeaderboardCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GLOBAL_LEADERBOARD_SIZE", "100")
	t.Setenv("LEADERBOARD_CACHE_TTL", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 100, cfg.GlobalLeaderboardSize)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardCacheTTL)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/ecomate")
	_, err = Load()
	assert.Error(t, err, "default JWT secret must be rejected in production")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
