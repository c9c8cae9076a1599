// Package main runs the holdings REST service consumed by the dashboard.
//
// The service stores holdings, the watchlist and the alerting bot's settings
// in dashboard.db, prices holdings through a TTL cache in cache.db backed by
// Yahoo Finance, and keeps that cache warm with a cron job.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/holdings-dashboard/internal/config"
	"github.com/aristath/holdings-dashboard/internal/di"
	portfoliohandlers "github.com/aristath/holdings-dashboard/internal/modules/portfolio/handlers"
	settingshandlers "github.com/aristath/holdings-dashboard/internal/modules/settings/handlers"
	"github.com/aristath/holdings-dashboard/internal/scheduler"
	"github.com/aristath/holdings-dashboard/internal/server"
	"github.com/aristath/holdings-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting holdings service")

	sched := scheduler.New(log)

	container, jobs, err := di.Wire(cfg, log, sched)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		CORSOrigins: cfg.CORSOrigins,
		Portfolio:   portfoliohandlers.NewHandler(container.PortfolioService, log),
		Settings:    settingshandlers.NewHandler(container.SettingsService, log),
		Databases:   container.Databases(),
		PriceSync:   jobs.PriceSync,
	})

	sched.Start()

	// Warm the cache before the first dashboard refresh.
	go func() {
		if err := sched.RunNow(jobs.PriceSync); err != nil {
			log.Warn().Err(err).Msg("Initial price sync failed")
		}
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Holdings service started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sched.Stop()

	if err := container.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close databases")
	}

	log.Info().Msg("Server stopped")
}
