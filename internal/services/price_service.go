// Package services holds the price lookup shared by the holdings handlers
// and the price sync job.
package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/holdings-dashboard/internal/clientdata"
	"github.com/aristath/holdings-dashboard/internal/utils"
)

// maxConcurrentFetches bounds parallel quote requests to Yahoo.
const maxConcurrentFetches = 4

// PriceFetcher is the live price source.
type PriceFetcher interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	BatchPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// PriceService provides cached prices with fallback:
// 1. Fresh cache entry
// 2. Live fetch (stored in the cache on success)
// 3. Stale cache entry
// 4. Unknown (nil)
type PriceService struct {
	fetcher PriceFetcher
	cache   *clientdata.Repository
	ttl     time.Duration
	log     zerolog.Logger
}

// NewPriceService creates a new price service.
func NewPriceService(fetcher PriceFetcher, cache *clientdata.Repository, ttl time.Duration, log zerolog.Logger) *PriceService {
	if ttl <= 0 {
		ttl = clientdata.TTLCurrentPrice
	}
	return &PriceService{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		log:     log.With().Str("service", "prices").Logger(),
	}
}

// Prices returns the best known price for every symbol. A symbol maps to
// nil when no price could be found; one failure never affects the others.
func (s *PriceService) Prices(ctx context.Context, symbols []string) map[string]*float64 {
	symbols = dedupe(symbols)
	result := make(map[string]*float64, len(symbols))

	var misses []string
	for _, symbol := range symbols {
		price, err := s.cache.GetIfFresh(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache read failed")
		}
		if price != nil {
			result[symbol] = price
			continue
		}
		misses = append(misses, symbol)
	}

	if len(misses) == 0 {
		return result
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, symbol := range misses {
		g.Go(func() error {
			price := s.fetchOne(gctx, symbol)
			mu.Lock()
			result[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result
}

func (s *PriceService) fetchOne(ctx context.Context, symbol string) *float64 {
	price, err := s.fetcher.CurrentPrice(ctx, symbol)
	if err == nil && price > 0 {
		if err := s.cache.Store(symbol, price, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache price")
		}
		return &price
	}

	stale, cacheErr := s.cache.Get(symbol)
	if cacheErr != nil {
		s.log.Warn().Err(cacheErr).Str("symbol", symbol).Msg("Price cache read failed")
	}
	if stale != nil {
		s.log.Warn().
			Err(err).
			Str("symbol", symbol).
			Float64("price", *stale).
			Str("source", "cache").
			Msg("Using stale price (fetch failed)")
		return stale
	}

	s.log.Warn().Err(err).Str("symbol", symbol).Msg("No price available")
	return nil
}

// Sync refreshes the cache for symbols with one batch download.
// Returns how many prices were stored.
func (s *PriceService) Sync(ctx context.Context, symbols []string) (int, error) {
	defer utils.OperationTimer("price_sync", s.log)()

	symbols = dedupe(symbols)
	if len(symbols) == 0 {
		return 0, nil
	}

	prices, err := s.fetcher.BatchPrices(ctx, symbols)
	if err != nil {
		return 0, err
	}

	stored := 0
	for symbol, price := range prices {
		if err := s.cache.Store(symbol, price, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache price")
			continue
		}
		stored++
	}

	if missing := len(symbols) - len(prices); missing > 0 {
		s.log.Warn().Int("missing", missing).Msg("Batch download returned no price for some symbols")
	}
	return stored, nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
