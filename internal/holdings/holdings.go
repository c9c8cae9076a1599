// Package holdings merges cost-basis records with live price fields and derives
// per-row and portfolio-wide P&L.
//
// Nothing here keeps state between refresh cycles: every call to Derive rebuilds
// the full row set from the latest service response.
package holdings

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// HoldingRecord is one position as returned by GET /api/holdings.
// Optional fields are nil when the service did not send them (or sent null).
type HoldingRecord struct {
	Symbol       string   `json:"symbol"`
	Shares       float64  `json:"shares"`
	AvgCost      float64  `json:"avg_cost"`
	CurrentPrice *float64 `json:"current_price"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	PnL          *float64 `json:"pnl,omitempty"`
	PnLPercent   *float64 `json:"pnl_percent,omitempty"`
}

// PriceKnown reports whether the service supplied a live price for the record.
func (r HoldingRecord) PriceKnown() bool {
	return r.CurrentPrice != nil
}

// DerivedRow is the locally computed view of a HoldingRecord.
// Value fields are nil when the price is unknown. PnLPercent may be NaN
// when the average cost is zero.
type DerivedRow struct {
	Symbol       string
	Shares       float64
	AvgCost      float64
	CostBasis    float64
	CurrentPrice *float64
	CurrentValue *float64
	PnL          *float64
	PnLPercent   *float64
}

// PriceKnown reports whether the row carries a live price.
func (r DerivedRow) PriceKnown() bool {
	return r.CurrentPrice != nil
}

// PortfolioTotals aggregates the rows whose value is known.
// Rows with an unknown price are excluded, not counted as zero.
type PortfolioTotals struct {
	CostBasis    float64
	CurrentValue float64
	PnL          float64
	PnLPercent   float64
	Priced       int // rows included in the sums
	Unpriced     int // rows excluded for lack of a price
}

// DeriveRow computes the derived fields for a single record.
func DeriveRow(r HoldingRecord) DerivedRow {
	row := DerivedRow{
		Symbol:    r.Symbol,
		Shares:    r.Shares,
		AvgCost:   r.AvgCost,
		CostBasis: r.Shares * r.AvgCost,
	}
	if r.CurrentPrice == nil {
		return row
	}

	price := *r.CurrentPrice
	row.CurrentPrice = &price

	value := r.Shares * price
	if r.CurrentValue != nil {
		value = *r.CurrentValue
	}
	row.CurrentValue = &value

	pnl := value - row.CostBasis
	if r.PnL != nil {
		pnl = *r.PnL
	}
	row.PnL = &pnl

	var pct float64
	switch {
	case r.PnLPercent != nil:
		pct = *r.PnLPercent
	case r.AvgCost == 0:
		pct = math.NaN()
	default:
		pct = (price - r.AvgCost) / r.AvgCost * 100
	}
	row.PnLPercent = &pct

	return row
}

// Derive computes every row, preserving the service's ordering, and the portfolio totals.
func Derive(records []HoldingRecord) ([]DerivedRow, PortfolioTotals) {
	rows := make([]DerivedRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, DeriveRow(r))
	}
	return rows, Totals(rows)
}

// Totals sums cost basis and current value over the rows with a known value.
func Totals(rows []DerivedRow) PortfolioTotals {
	costs := make([]float64, 0, len(rows))
	values := make([]float64, 0, len(rows))

	var totals PortfolioTotals
	for _, row := range rows {
		if row.CurrentValue == nil {
			totals.Unpriced++
			continue
		}
		costs = append(costs, row.CostBasis)
		values = append(values, *row.CurrentValue)
		totals.Priced++
	}

	if len(costs) > 0 {
		totals.CostBasis = floats.Sum(costs)
		totals.CurrentValue = floats.Sum(values)
	}
	totals.PnL = totals.CurrentValue - totals.CostBasis
	if totals.CostBasis > 0 {
		totals.PnLPercent = totals.PnL / totals.CostBasis * 100
	}
	return totals
}
