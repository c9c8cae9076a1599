// Package render turns derived holdings into display strings.
//
// Build is pure: the same rows, totals and time always give the same ViewModel,
// so the refresh cycle can be tested without a terminal. Painting the ViewModel
// is the ui package's job.
package render

import (
	"time"

	"github.com/aristath/holdings-dashboard/internal/holdings"
)

// TimeLayout is the wall-clock format of the "last updated" stamp.
const TimeLayout = "3:04:05 PM"

// RowView holds the display text of one holdings table row.
type RowView struct {
	Symbol     string
	Shares     string
	AvgCost    string
	Price      string
	Value      string
	PnL        string
	PnLPercent string
	Class      string // empty when the price is unknown
}

// TotalsView holds the three aggregate summary fields.
type TotalsView struct {
	CurrentValue string
	PnL          string
	PnLPercent   string
	Class        string
}

// ViewModel is everything the holdings view shows after one refresh cycle.
type ViewModel struct {
	Rows      []RowView
	Totals    TotalsView
	UpdatedAt string
}

// Empty reports whether the view has no rows.
func (vm ViewModel) Empty() bool {
	return len(vm.Rows) == 0
}

// Row builds the display row for a derived holding.
func Row(r holdings.DerivedRow) RowView {
	view := RowView{
		Symbol:  r.Symbol,
		Shares:  Shares(r.Shares),
		AvgCost: Money(r.AvgCost),
	}
	if !r.PriceKnown() || r.CurrentValue == nil {
		view.Price = PriceUnknown
		view.Value = ValueUnknown
		view.PnL = ValueUnknown
		view.PnLPercent = ValueUnknown
		return view
	}

	view.Price = Money(*r.CurrentPrice)
	view.Value = Money(*r.CurrentValue)
	view.PnL = ValueUnknown
	view.PnLPercent = ValueUnknown
	if r.PnL != nil {
		view.PnL = SignedMoney(*r.PnL)
		view.Class = Class(*r.PnL)
	}
	if r.PnLPercent != nil {
		view.PnLPercent = SignedPercent(*r.PnLPercent)
	}
	return view
}

// Totals builds the summary fields.
func Totals(t holdings.PortfolioTotals) TotalsView {
	return TotalsView{
		CurrentValue: Money(t.CurrentValue),
		PnL:          SignedMoney(t.PnL),
		PnLPercent:   SignedPercent(t.PnLPercent),
		Class:        Class(t.PnL),
	}
}

// Build produces the complete ViewModel for one refresh cycle.
func Build(rows []holdings.DerivedRow, totals holdings.PortfolioTotals, now time.Time) ViewModel {
	vm := ViewModel{
		Rows:      make([]RowView, 0, len(rows)),
		Totals:    Totals(totals),
		UpdatedAt: now.Format(TimeLayout),
	}
	for _, r := range rows {
		vm.Rows = append(vm.Rows, Row(r))
	}
	return vm
}
