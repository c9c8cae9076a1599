package di

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/holdings-dashboard/internal/config"
	"github.com/aristath/holdings-dashboard/internal/scheduler"
)

func testConfig(t *testing.T) *config.Server {
	return &config.Server{
		DataDir:           t.TempDir(),
		Port:              5000,
		PriceCacheTTL:     time.Minute,
		PriceSyncSchedule: "@every 1m",
	}
}

func TestInitializeDatabases(t *testing.T) {
	cfg := testConfig(t)

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.DashboardDB)
	assert.NotNil(t, container.CacheDB)
	assert.Len(t, container.Databases(), 2)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "dashboard.db"))
	assert.FileExists(t, filepath.Join(cfg.DataDir, "cache.db"))
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)
	sched := scheduler.New(zerolog.Nop())

	container, jobs, err := Wire(cfg, zerolog.Nop(), sched)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.PortfolioService)
	assert.NotNil(t, container.SettingsService)
	assert.NotNil(t, container.PriceService)
	assert.Equal(t, "price_sync", jobs.PriceSync.Name())
	assert.Equal(t, "price_cache_cleanup", jobs.CacheCleanup.Name())
	assert.Equal(t, 2, sched.Jobs())
}

func TestWire_WithoutScheduler(t *testing.T) {
	container, jobs, err := Wire(testConfig(t), zerolog.Nop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, jobs.PriceSync)
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.PriceSyncSchedule = "whenever"

	_, _, err := Wire(cfg, zerolog.Nop(), scheduler.New(zerolog.Nop()))
	assert.ErrorContains(t, err, "PRICE_SYNC_SCHEDULE")
}
