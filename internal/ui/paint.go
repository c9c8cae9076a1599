package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/holdings-dashboard/internal/render"
	"github.com/aristath/holdings-dashboard/internal/theme"
)

var holdingsColumns = []string{"Symbol", "Shares", "Avg Cost", "Price", "Value", "P&L", "P&L %"}

const emptyHoldings = "No holdings yet. Press a to add one."

func cells(r render.RowView) []string {
	return []string{r.Symbol, r.Shares, r.AvgCost, r.Price, r.Value, r.PnL, r.PnLPercent}
}

// PaintHoldings draws the holdings table. cursor marks the selected row;
// pass -1 for none. The output depends only on its arguments.
func PaintHoldings(vm render.ViewModel, cursor int, t theme.Theme) string {
	if vm.Empty() {
		return t.Dim().Render(emptyHoldings)
	}

	widths := make([]int, len(holdingsColumns))
	for i, h := range holdingsColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range vm.Rows {
		for i, c := range cells(r) {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	align := func(i int) lipgloss.Position {
		if i == 0 {
			return lipgloss.Left
		}
		return lipgloss.Right
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range holdingsColumns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(t.Header().Width(widths[i]).Align(align(i)).Render(h))
	}
	b.WriteString("\n")

	for idx, r := range vm.Rows {
		marker := "  "
		if idx == cursor {
			marker = t.Title().Render("› ")
		}
		b.WriteString(marker)

		pnl := t.ClassStyle(r.Class)
		for i, c := range cells(r) {
			if i > 0 {
				b.WriteString("  ")
			}
			style := t.Cell()
			if i >= 5 {
				style = pnl
			}
			if i == 0 {
				style = style.Bold(true)
			}
			b.WriteString(style.Width(widths[i]).Align(align(i)).Render(c))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PaintTotals draws the portfolio summary line.
func PaintTotals(vm render.ViewModel, t theme.Theme) string {
	label := t.Dim()
	value := t.Cell().Bold(true)
	pnl := t.ClassStyle(vm.Totals.Class).Bold(true)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Total Value: "), value.Render(vm.Totals.CurrentValue),
		label.Render("   Total P&L: "), pnl.Render(vm.Totals.PnL),
		label.Render(" ("), pnl.Render(vm.Totals.PnLPercent), label.Render(")"),
	)
}

// PaintSnapshot draws table, totals and the update time in one block.
func PaintSnapshot(vm render.ViewModel, t theme.Theme) string {
	parts := []string{PaintHoldings(vm, -1, t)}
	if !vm.Empty() {
		parts = append(parts, "", PaintTotals(vm, t))
	}
	parts = append(parts, t.Dim().Render("Last updated: "+vm.UpdatedAt))
	return strings.Join(parts, "\n")
}
