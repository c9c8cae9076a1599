// Package portfolio stores holdings and the watchlist and enriches holdings
// with live prices for GET /api/holdings.
package portfolio

import "errors"

// Holding is a stored position.
type Holding struct {
	Symbol  string
	Shares  float64
	AvgCost float64
}

// EnrichedHolding is one element of the GET /api/holdings response.
// Price dependent fields are null when no price is known.
type EnrichedHolding struct {
	Symbol       string   `json:"symbol"`
	Shares       float64  `json:"shares"`
	AvgCost      float64  `json:"avg_cost"`
	CurrentPrice *float64 `json:"current_price"`
	CostBasis    float64  `json:"cost_basis"`
	CurrentValue *float64 `json:"current_value"`
	PnL          *float64 `json:"pnl"`
	PnLPercent   *float64 `json:"pnl_percent"`
}

// Validation and conflict errors. Handlers turn these into 400 responses
// whose message is the error text.
var (
	ErrInvalidHolding  = errors.New("Invalid data")
	ErrHoldingExists   = errors.New("Stock already in holdings")
	ErrInvalidSymbol   = errors.New("Invalid symbol")
	ErrAlreadyWatched  = errors.New("Already in watchlist")
	errDuplicateSymbol = errors.New("duplicate symbol")
)
