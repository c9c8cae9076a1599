// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/config"
	"github.com/aristath/holdings-dashboard/internal/database"
)

// InitializeDatabases opens dashboard.db and cache.db and applies schemas
func InitializeDatabases(cfg *config.Server, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. dashboard.db - holdings, watchlist, settings
	dashboardDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "dashboard",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard database: %w", err)
	}
	container.DashboardDB = dashboardDB

	// 2. cache.db - quotes, safe to delete
	cacheDB, err := database.New(database.Config{
		Path:    cfg.CachePath(),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		dashboardDB.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	container.CacheDB = cacheDB

	for _, db := range container.Databases() {
		if err := db.Migrate(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to apply schema to %s: %w", db.Name(), err)
		}
	}

	log.Info().Str("data_dir", cfg.DataDir).Msg("Databases initialized and schemas applied")

	return container, nil
}
