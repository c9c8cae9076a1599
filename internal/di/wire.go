package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/clientdata"
	"github.com/aristath/holdings-dashboard/internal/clients/yahoo"
	"github.com/aristath/holdings-dashboard/internal/config"
	"github.com/aristath/holdings-dashboard/internal/modules/portfolio"
	"github.com/aristath/holdings-dashboard/internal/modules/settings"
	"github.com/aristath/holdings-dashboard/internal/scheduler"
	"github.com/aristath/holdings-dashboard/internal/services"
)

// cleanupSchedule runs the price cache cleanup daily at 03:00.
const cleanupSchedule = "0 0 3 * * *"

// Wire initializes all dependencies and registers jobs with sched.
// Order of operations:
// 1. Initialize databases
// 2. Initialize repositories
// 3. Initialize services
// 4. Register jobs
func Wire(cfg *config.Server, log zerolog.Logger, sched *scheduler.Scheduler) (*Container, *JobInstances, error) {
	container, err := InitializeDatabases(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	InitializeRepositories(container, log)
	InitializeServices(container, cfg, log)

	jobs, err := RegisterJobs(container, cfg, sched, log)
	if err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, jobs, nil
}

// InitializeRepositories creates repositories over the open databases
func InitializeRepositories(c *Container, log zerolog.Logger) {
	c.HoldingRepo = portfolio.NewHoldingRepository(c.DashboardDB.Conn(), log)
	c.WatchlistRepo = portfolio.NewWatchlistRepository(c.DashboardDB.Conn(), log)
	c.SettingsRepo = settings.NewRepository(c.DashboardDB.Conn(), log)
	c.PriceCache = clientdata.NewRepository(c.CacheDB.Conn())
}

// InitializeServices creates clients and services
func InitializeServices(c *Container, cfg *config.Server, log zerolog.Logger) {
	c.YahooClient = yahoo.NewClient(log)
	c.PriceService = services.NewPriceService(c.YahooClient, c.PriceCache, cfg.PriceCacheTTL, log)
	c.PortfolioService = portfolio.NewService(c.HoldingRepo, c.WatchlistRepo, c.PriceService, log)
	c.SettingsService = settings.NewService(c.SettingsRepo, log)
}

// RegisterJobs creates the background jobs and schedules them
func RegisterJobs(c *Container, cfg *config.Server, sched *scheduler.Scheduler, log zerolog.Logger) (*JobInstances, error) {
	jobs := &JobInstances{
		PriceSync: scheduler.NewPriceSyncJob(
			c.HoldingRepo,
			scheduler.SymbolsFunc(c.WatchlistRepo.List),
			c.PriceService,
			0,
			log,
		),
		CacheCleanup: clientdata.NewCleanupJob(c.PriceCache, clientdata.StaleRetention, log),
	}

	if sched == nil {
		return jobs, nil
	}
	if err := sched.AddJob(cfg.PriceSyncSchedule, jobs.PriceSync); err != nil {
		return nil, fmt.Errorf("invalid PRICE_SYNC_SCHEDULE %q: %w", cfg.PriceSyncSchedule, err)
	}
	if err := sched.AddJob(cleanupSchedule, jobs.CacheCleanup); err != nil {
		return nil, err
	}
	return jobs, nil
}
