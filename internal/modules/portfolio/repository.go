package portfolio

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// HoldingRepository handles the holdings table in dashboard.db.
// Rows come back in insertion order.
type HoldingRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewHoldingRepository(db *sql.DB, log zerolog.Logger) *HoldingRepository {
	return &HoldingRepository{
		db:  db,
		log: log.With().Str("repository", "holdings").Logger(),
	}
}

// List returns all holdings ordered by insertion.
func (r *HoldingRepository) List(ctx context.Context) ([]Holding, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT symbol, shares, avg_cost FROM holdings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]Holding, 0)
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.Symbol, &h.Shares, &h.AvgCost); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}
	return holdings, nil
}

// Symbols returns the held symbols in insertion order.
func (r *HoldingRepository) Symbols(ctx context.Context) ([]string, error) {
	holdings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	return symbols, nil
}

// Add inserts h. It returns errDuplicateSymbol when the symbol is already held.
func (r *HoldingRepository) Add(ctx context.Context, h Holding) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO holdings (symbol, shares, avg_cost, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO NOTHING
	`, h.Symbol, h.Shares, h.AvgCost, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errDuplicateSymbol
	}

	r.log.Info().Str("symbol", h.Symbol).Float64("shares", h.Shares).Msg("Holding added")
	return nil
}

// Delete removes symbol. Deleting a symbol that is not held is not an error.
func (r *HoldingRepository) Delete(ctx context.Context, symbol string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM holdings WHERE symbol = ?", symbol)
	if err != nil {
		return fmt.Errorf("failed to delete holding %s: %w", symbol, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.log.Info().Str("symbol", symbol).Msg("Holding deleted")
	}
	return nil
}

// WatchlistRepository handles the watchlist table in dashboard.db.
type WatchlistRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewWatchlistRepository(db *sql.DB, log zerolog.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		db:  db,
		log: log.With().Str("repository", "watchlist").Logger(),
	}
}

func (r *WatchlistRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT symbol FROM watchlist ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

func (r *WatchlistRepository) Add(ctx context.Context, symbol string) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO watchlist (symbol, created_at)
		VALUES (?, ?)
		ON CONFLICT(symbol) DO NOTHING
	`, symbol, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert watchlist symbol %s: %w", symbol, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errDuplicateSymbol
	}
	return nil
}

func (r *WatchlistRepository) Delete(ctx context.Context, symbol string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM watchlist WHERE symbol = ?", symbol); err != nil {
		return fmt.Errorf("failed to delete watchlist symbol %s: %w", symbol, err)
	}
	return nil
}
