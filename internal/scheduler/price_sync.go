package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SymbolSource lists the symbols whose prices should be kept warm.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// SymbolsFunc adapts a plain listing function to SymbolSource.
type SymbolsFunc func(ctx context.Context) ([]string, error)

// Symbols calls f(ctx).
func (f SymbolsFunc) Symbols(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// PriceSyncer refreshes cached prices.
type PriceSyncer interface {
	Sync(ctx context.Context, symbols []string) (int, error)
}

// PriceSyncJob refreshes the price cache for every holding so that
// GET /api/holdings is usually served from fresh cache entries.
type PriceSyncJob struct {
	holdings SymbolSource
	watch    SymbolSource
	prices   PriceSyncer
	timeout  time.Duration
	log      zerolog.Logger
}

// NewPriceSyncJob creates the price sync job. watch may be nil.
func NewPriceSyncJob(holdings, watch SymbolSource, prices PriceSyncer, timeout time.Duration, log zerolog.Logger) *PriceSyncJob {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &PriceSyncJob{
		holdings: holdings,
		watch:    watch,
		prices:   prices,
		timeout:  timeout,
		log:      log.With().Str("job", "price_sync").Logger(),
	}
}

// Run executes one sync pass.
func (j *PriceSyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	symbols, err := j.holdings.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to list holdings: %w", err)
	}
	if j.watch != nil {
		watched, err := j.watch.Symbols(ctx)
		if err != nil {
			j.log.Warn().Err(err).Msg("Failed to list watchlist, syncing holdings only")
		} else {
			symbols = append(symbols, watched...)
		}
	}

	if len(symbols) == 0 {
		j.log.Debug().Msg("Nothing to sync")
		return nil
	}

	stored, err := j.prices.Sync(ctx, symbols)
	if err != nil {
		return fmt.Errorf("price sync failed: %w", err)
	}

	j.log.Info().
		Int("symbols", len(symbols)).
		Int("stored", stored).
		Msg("Price sync completed")
	return nil
}

// Name returns the job name for scheduling and logging.
func (j *PriceSyncJob) Name() string {
	return "price_sync"
}
