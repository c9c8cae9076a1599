package render

import (
	"fmt"
	"math"
)

// Placeholders shown when a value cannot be computed.
const (
	PriceUnknown = "N/A"
	ValueUnknown = "-"
)

// Style classes applied to P&L cells and totals.
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// Money renders v as "$1234.50".
func Money(v float64) string {
	if !finite(v) {
		return ValueUnknown
	}
	return fmt.Sprintf("$%.2f", v)
}

// SignedMoney renders the sign of v followed by its unsigned magnitude:
// -12.5 -> "-$12.50", 0 -> "+$0.00".
func SignedMoney(v float64) string {
	if !finite(v) {
		return ValueUnknown
	}
	return sign(v) + fmt.Sprintf("$%.2f", math.Abs(v))
}

// SignedPercent renders v with two decimals and a % suffix, same sign rule as SignedMoney.
func SignedPercent(v float64) string {
	if !finite(v) {
		return ValueUnknown
	}
	return sign(v) + fmt.Sprintf("%.2f%%", math.Abs(v))
}

// Shares renders a share count with three decimals.
func Shares(v float64) string {
	if !finite(v) {
		return ValueUnknown
	}
	return fmt.Sprintf("%.3f", v)
}

// Class returns the style class for a P&L value; zero counts as positive.
func Class(v float64) string {
	if v < 0 {
		return ClassNegative
	}
	return ClassPositive
}

func sign(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
