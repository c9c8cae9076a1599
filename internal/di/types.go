package di

import (
	"errors"

	"github.com/aristath/holdings-dashboard/internal/clientdata"
	"github.com/aristath/holdings-dashboard/internal/clients/yahoo"
	"github.com/aristath/holdings-dashboard/internal/database"
	"github.com/aristath/holdings-dashboard/internal/modules/portfolio"
	"github.com/aristath/holdings-dashboard/internal/modules/settings"
	"github.com/aristath/holdings-dashboard/internal/scheduler"
	"github.com/aristath/holdings-dashboard/internal/services"
)

// Container holds all dependencies of the service
type Container struct {
	// Databases
	DashboardDB *database.DB // holdings, watchlist, settings
	CacheDB     *database.DB // current_prices

	// Repositories
	HoldingRepo   *portfolio.HoldingRepository
	WatchlistRepo *portfolio.WatchlistRepository
	SettingsRepo  *settings.Repository
	PriceCache    *clientdata.Repository

	// Clients
	YahooClient *yahoo.Client

	// Services
	PriceService     *services.PriceService
	PortfolioService *portfolio.Service
	SettingsService  *settings.Service
}

// JobInstances holds the registered background jobs
type JobInstances struct {
	PriceSync    scheduler.Job
	CacheCleanup scheduler.Job
}

// Databases returns every open database, for health checks and shutdown.
func (c *Container) Databases() []*database.DB {
	var dbs []*database.DB
	for _, db := range []*database.DB{c.DashboardDB, c.CacheDB} {
		if db != nil {
			dbs = append(dbs, db)
		}
	}
	return dbs
}

// Close closes all databases.
func (c *Container) Close() error {
	var errs []error
	for _, db := range c.Databases() {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
