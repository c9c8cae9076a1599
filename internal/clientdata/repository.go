// Package clientdata caches quotes fetched from the price source in cache.db.
// Rows carry an expiration timestamp for cache-first reads; expired rows are
// kept as a fallback until the cleanup job removes them.
package clientdata

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Repository provides cache operations on the current_prices table.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a new price cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Quote is a cached price with its timestamps.
type Quote struct {
	Symbol    string
	Price     float64
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the quote has not yet expired at t.
func (q Quote) Fresh(t time.Time) bool {
	return q.ExpiresAt.After(t)
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Store saves a price with expiration = now + ttl.
func (r *Repository) Store(symbol string, price float64, ttl time.Duration) error {
	now := r.now()
	_, err := r.db.Exec(`
		INSERT INTO current_prices (symbol, price, fetched_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`, normalize(symbol), price, now.Unix(), now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("failed to store price for %s: %w", symbol, err)
	}
	return nil
}

// GetIfFresh returns the cached price only if expires_at > now.
// Returns nil, nil if the symbol is missing or expired.
// Use Get() to retrieve a stale price as a fallback when the fetch fails.
func (r *Repository) GetIfFresh(symbol string) (*float64, error) {
	q, err := r.lookup(symbol)
	if err != nil || q == nil {
		return nil, err
	}
	if !q.Fresh(r.now()) {
		return nil, nil
	}
	return &q.Price, nil
}

// Get returns the cached price regardless of expiration status.
// Returns nil, nil if the symbol has never been stored.
func (r *Repository) Get(symbol string) (*float64, error) {
	q, err := r.lookup(symbol)
	if err != nil || q == nil {
		return nil, err
	}
	return &q.Price, nil
}

// Quote returns the full cached row, or nil if absent.
func (r *Repository) Quote(symbol string) (*Quote, error) {
	return r.lookup(symbol)
}

func (r *Repository) lookup(symbol string) (*Quote, error) {
	var (
		q         Quote
		fetchedAt int64
		expiresAt int64
	)
	err := r.db.QueryRow(
		"SELECT symbol, price, fetched_at, expires_at FROM current_prices WHERE symbol = ?",
		normalize(symbol),
	).Scan(&q.Symbol, &q.Price, &fetchedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price for %s: %w", symbol, err)
	}
	q.FetchedAt = time.Unix(fetchedAt, 0)
	q.ExpiresAt = time.Unix(expiresAt, 0)
	return &q, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(symbol string) error {
	if _, err := r.db.Exec("DELETE FROM current_prices WHERE symbol = ?", normalize(symbol)); err != nil {
		return fmt.Errorf("failed to delete price for %s: %w", symbol, err)
	}
	return nil
}

// DeleteExpiredBefore removes rows whose expires_at is older than cutoff.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM current_prices WHERE expires_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired prices: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
