package yahoo

import (
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/multi"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// source is the part of Yahoo Finance the client reads from.
type source interface {
	// closes returns the close of every bar in the window, oldest first.
	closes(symbol, period, interval string) ([]float64, error)
	// snapshot returns the quote or info price, 0 if neither has one.
	snapshot(symbol string) (float64, error)
	// batchCloses downloads bars for many symbols in one call.
	batchCloses(symbols []string, period, interval string) (map[string][]float64, map[string]error, error)
}

// yfinanceSource implements source with go-yfinance.
type yfinanceSource struct{}

func (yfinanceSource) closes(symbol, period, interval string) ([]float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   interval,
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	out := make([]float64, 0, len(bars))
	for _, bar := range bars {
		out = append(out, bar.Close)
	}
	return out, nil
}

func (yfinanceSource) snapshot(symbol string) (float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	quote, err := t.Quote()
	if err == nil && quote != nil {
		if quote.RegularMarketPrice > 0 {
			return quote.RegularMarketPrice, nil
		}
		if quote.PostMarketPrice > 0 {
			return quote.PostMarketPrice, nil
		}
		if quote.PreMarketPrice > 0 {
			return quote.PreMarketPrice, nil
		}
	}

	info, err := t.Info()
	if err != nil {
		return 0, fmt.Errorf("failed to get info: %w", err)
	}
	if info == nil {
		return 0, nil
	}
	if info.CurrentPrice > 0 {
		return info.CurrentPrice, nil
	}
	return info.RegularMarketPreviousClose, nil
}

func (yfinanceSource) batchCloses(symbols []string, period, interval string) (map[string][]float64, map[string]error, error) {
	params := models.DefaultDownloadParams()
	params.Symbols = symbols
	params.Period = period
	params.Interval = interval

	result, err := multi.Download(symbols, &params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download batch quotes: %w", err)
	}

	data := make(map[string][]float64, len(result.Data))
	for symbol, bars := range result.Data {
		closes := make([]float64, 0, len(bars))
		for _, bar := range bars {
			closes = append(closes, bar.Close)
		}
		data[symbol] = closes
	}

	errs := make(map[string]error, len(result.Errors))
	for symbol, err := range result.Errors {
		errs[symbol] = err
	}
	return data, errs, nil
}
