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

	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, "https://fbref.com", cfg.SourceBaseURL)
	assert.Equal(t, "/en/comps/9/2023-2024/2023-2024-Premier-League-Stats", cfg.LeagueURL)
	assert.Equal(t, "2023-2024", cfg.Season)
	assert.Equal(t, "Premier League", cfg.Competition)

	assert.Equal(t, 5*time.Second, cfg.MinRequestDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxRequestDelay)
	assert.Equal(t, 5, cfg.LongPauseInterval)
	assert.Equal(t, 15*time.Second, cfg.LongPauseMin)
	assert.Equal(t, 25*time.Second, cfg.LongPauseMax)
	assert.Equal(t, 3, cfg.UserAgentRotate)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("MIN_REQUEST_DELAY", "1s")
	t.Setenv("MAX_REQUEST_DELAY", "2s")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("DEBUG_TEAM_LIMIT", "3")
	t.Setenv("SEASON", "2024-2025")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.Equal(t, time.Second, cfg.MinRequestDelay)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.DebugTeamLimit)
	assert.Equal(t, "2024-2025", cfg.Season)
}

func TestLoadRejectsInvalidDelayRange(t *testing.T) {
	t.Setenv("MIN_REQUEST_DELAY", "10s")
	t.Setenv("MAX_REQUEST_DELAY", "5s")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("LONG_PAUSE_INTERVAL", "0")

	_, err := Load()
	require.Error(t, err)
}
