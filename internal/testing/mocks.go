package testing

import (
	"context"
	"strings"
	"sync"
)

// StaticPrices is a price provider that answers from a fixed map.
// Symbols not in the map are absent from the result.
type StaticPrices struct {
	mu     sync.Mutex
	prices map[string]float64
	calls  [][]string
}

// NewStaticPrices creates a price provider returning prices.
func NewStaticPrices(prices map[string]float64) *StaticPrices {
	return &StaticPrices{prices: prices}
}

// Prices implements the portfolio price provider.
func (p *StaticPrices) Prices(_ context.Context, symbols []string) map[string]*float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, symbols)

	out := make(map[string]*float64, len(symbols))
	for _, s := range symbols {
		if v, ok := p.prices[strings.ToUpper(s)]; ok {
			out[s] = &v
		}
	}
	return out
}

// Calls returns the symbol lists Prices was called with.
func (p *StaticPrices) Calls() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]string(nil), p.calls...)
}
