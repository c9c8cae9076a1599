package portfolio

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/holdings"
)

// PriceProvider returns the best known price per symbol. A symbol is missing
// from the result, or nil, when no price is known.
type PriceProvider interface {
	Prices(ctx context.Context, symbols []string) map[string]*float64
}

// Service implements the holdings and watchlist operations of the API.
type Service struct {
	holdings  *HoldingRepository
	watchlist *WatchlistRepository
	prices    PriceProvider
	log       zerolog.Logger
}

func NewService(holdingsRepo *HoldingRepository, watchlistRepo *WatchlistRepository, prices PriceProvider, log zerolog.Logger) *Service {
	return &Service{
		holdings:  holdingsRepo,
		watchlist: watchlistRepo,
		prices:    prices,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// EnrichedHoldings returns every holding with live price fields. A symbol
// without a price keeps its cost basis and gets null value fields; it never
// fails the whole response.
func (s *Service) EnrichedHoldings(ctx context.Context) ([]EnrichedHolding, error) {
	stored, err := s.holdings.List(ctx)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, len(stored))
	for i, h := range stored {
		symbols[i] = h.Symbol
	}

	var prices map[string]*float64
	if len(symbols) > 0 {
		prices = s.prices.Prices(ctx, symbols)
	}

	out := make([]EnrichedHolding, 0, len(stored))
	for _, h := range stored {
		row := holdings.DeriveRow(holdings.HoldingRecord{
			Symbol:       h.Symbol,
			Shares:       h.Shares,
			AvgCost:      h.AvgCost,
			CurrentPrice: prices[h.Symbol],
		})
		out = append(out, EnrichedHolding{
			Symbol:       row.Symbol,
			Shares:       row.Shares,
			AvgCost:      row.AvgCost,
			CurrentPrice: row.CurrentPrice,
			CostBasis:    row.CostBasis,
			CurrentValue: row.CurrentValue,
			PnL:          row.PnL,
			PnLPercent:   row.PnLPercent,
		})
	}
	return out, nil
}

// AddHolding validates and stores a new position.
func (s *Service) AddHolding(ctx context.Context, symbol string, shares, avgCost float64) error {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" || !(shares > 0) || !(avgCost > 0) {
		return ErrInvalidHolding
	}

	err := s.holdings.Add(ctx, Holding{Symbol: symbol, Shares: shares, AvgCost: avgCost})
	if errors.Is(err, errDuplicateSymbol) {
		return ErrHoldingExists
	}
	return err
}

// DeleteHolding removes symbol, matching case-insensitively.
func (s *Service) DeleteHolding(ctx context.Context, symbol string) error {
	return s.holdings.Delete(ctx, NormalizeSymbol(symbol))
}

func (s *Service) Watchlist(ctx context.Context) ([]string, error) {
	return s.watchlist.List(ctx)
}

func (s *Service) AddToWatchlist(ctx context.Context, symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return ErrInvalidSymbol
	}

	err := s.watchlist.Add(ctx, symbol)
	if errors.Is(err, errDuplicateSymbol) {
		return ErrAlreadyWatched
	}
	return err
}

func (s *Service) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	return s.watchlist.Delete(ctx, NormalizeSymbol(symbol))
}
