// Package yahoo fetches live prices from Yahoo Finance.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoPrice is returned when every lookup for a symbol came back empty.
var ErrNoPrice = errors.New("no price available")

const (
	defaultMaxRetries = 3
	defaultBackoff    = time.Second
)

// Client fetches current prices. Lookups try intraday bars first, then
// daily bars, then the quote snapshot.
type Client struct {
	src        source
	maxRetries int
	backoff    time.Duration
	log        zerolog.Logger
}

// NewClient creates a Yahoo Finance client backed by go-yfinance.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		src:        yfinanceSource{},
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

// CurrentPrice returns the latest price for symbol, retrying with
// exponential backoff. Returns ErrNoPrice if no lookup produced a price.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<uint(attempt-1))
			c.log.Warn().Err(lastErr).Str("symbol", symbol).Int("attempt", attempt+1).Dur("wait", wait).Msg("Retrying")
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(wait):
			}
		} else if err := ctx.Err(); err != nil {
			return 0, err
		}

		price, err := c.lookup(symbol)
		if err == nil {
			return price, nil
		}
		lastErr = err
	}

	return 0, fmt.Errorf("%s: failed after %d attempts: %w", symbol, c.maxRetries, lastErr)
}

func (c *Client) lookup(symbol string) (float64, error) {
	var errs []error

	for _, w := range []struct{ period, interval string }{{"1d", "1m"}, {"5d", "1d"}} {
		closes, err := c.src.closes(symbol, w.period, w.interval)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if price, ok := lastPositive(closes); ok {
			return price, nil
		}
	}

	price, err := c.src.snapshot(symbol)
	if err != nil {
		errs = append(errs, err)
	} else if price > 0 {
		return price, nil
	}

	if len(errs) > 0 {
		return 0, fmt.Errorf("%w: %w", ErrNoPrice, errors.Join(errs...))
	}
	return 0, ErrNoPrice
}

// BatchPrices downloads recent daily bars for all symbols in one request
// and returns the last close per symbol. Symbols Yahoo had no data for are
// absent from the result.
func (c *Client) BatchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	if len(symbols) == 0 {
		return prices, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(s)))
	}

	data, errs, err := c.src.batchCloses(normalized, "5d", "1d")
	if err != nil {
		return nil, err
	}

	for _, symbol := range normalized {
		if price, ok := lastPositive(data[symbol]); ok {
			prices[symbol] = price
			continue
		}
		if err, ok := errs[symbol]; ok {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to get quote for symbol")
		}
	}
	return prices, nil
}

func lastPositive(closes []float64) (float64, bool) {
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return closes[i], true
		}
	}
	return 0, false
}
