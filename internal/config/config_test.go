package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboard_Defaults(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "")
	t.Setenv("DASHBOARD_REFRESH_INTERVAL", "")
	t.Setenv("DASHBOARD_TOAST_DURATION", "")
	t.Setenv("DASHBOARD_HTTP_TIMEOUT", "")
	t.Setenv("DASHBOARD_DISCARD_STALE", "")

	cfg, err := LoadDashboard()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 3*time.Second, cfg.ToastDuration)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.False(t, cfg.DiscardStale)
}

func TestLoadDashboard_Overrides(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "http://trader.local:8080/")
	t.Setenv("DASHBOARD_REFRESH_INTERVAL", "10s")
	t.Setenv("DASHBOARD_TOAST_DURATION", "5")
	t.Setenv("DASHBOARD_DISCARD_STALE", "true")

	cfg, err := LoadDashboard()
	require.NoError(t, err)

	assert.Equal(t, "http://trader.local:8080", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.ToastDuration)
	assert.True(t, cfg.DiscardStale)
}

func TestLoadDashboard_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DASHBOARD_REFRESH_INTERVAL", "soon")

	cfg, err := LoadDashboard()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestDashboardValidate(t *testing.T) {
	valid := Dashboard{APIURL: "http://x", RefreshInterval: time.Second, ToastDuration: time.Second}
	assert.NoError(t, valid.Validate())

	noURL := valid
	noURL.APIURL = ""
	assert.Error(t, noURL.Validate())

	zeroInterval := valid
	zeroInterval.RefreshInterval = 0
	assert.Error(t, zeroInterval.Validate())

	zeroToast := valid
	zeroToast.ToastDuration = 0
	assert.Error(t, zeroToast.Validate())

	negativeTimeout := valid
	negativeTimeout.HTTPTimeout = -time.Second
	assert.Error(t, negativeTimeout.Validate())
}

func TestLoadServer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("PORT", "5050")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PRICE_CACHE_TTL", "2m")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.DirExists(t, dir)
	assert.Equal(t, 5050, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.PriceCacheTTL)
	assert.Equal(t, "@every 1m", cfg.PriceSyncSchedule)
	assert.Equal(t, filepath.Join(dir, "dashboard.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.CachePath())
}

func TestServerValidate_Port(t *testing.T) {
	cfg := Server{Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg.Port = 5000
	assert.NoError(t, cfg.Validate())
}
