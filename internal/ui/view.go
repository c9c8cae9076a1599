package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/holdings-dashboard/internal/poller"
	"github.com/aristath/holdings-dashboard/internal/theme"
)

const bannerText = "Trading Bot"

// bannerMinHeight is the terminal height below which the banner is dropped.
const bannerMinHeight = 30

func renderBanner() string {
	fig := figure.NewFigure(bannerText, "small", true)
	return strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n ")
}

func (m Model) View() string {
	t := theme.Default
	pad := lipgloss.NewStyle().Padding(0, 2)

	blocks := []string{}
	if m.height == 0 || m.height >= bannerMinHeight {
		blocks = append(blocks, t.Title().Render(renderBanner()))
	}
	blocks = append(blocks, m.viewTabs(), "", m.viewContent())

	if m.confirm != nil {
		blocks = append(blocks, "", t.Panel().Render(
			m.confirm.prompt()+"  "+t.Dim().Render(help.New().ShortHelpView([]key.Binding{confirmKeys.Yes, confirmKeys.No})),
		))
	} else if m.form != nil {
		blocks = append(blocks, "", m.form.view(t))
	}

	if m.toast != nil {
		blocks = append(blocks, "", t.Toast(m.toast.isError).Render(m.toast.text))
	}

	blocks = append(blocks, "", m.viewHelp())
	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m Model) viewTabs() string {
	t := theme.Default
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs = append(tabs, t.ActiveTab().Render(label))
		} else {
			tabs = append(tabs, t.InactiveTab().Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewContent() string {
	switch m.tab {
	case TabHoldings:
		return m.viewHoldings()
	case TabWatchlist:
		return m.viewWatchlist()
	case TabSettings:
		return m.viewSettings()
	}
	return ""
}

func (m Model) viewHoldings() string {
	t := theme.Default

	if !m.loaded {
		return t.Dim().Render("Loading holdings from " + m.opts.APIURL + "...")
	}

	status := fmt.Sprintf("Last updated: %s", m.holdingsView.UpdatedAt)
	if m.poller.State() == poller.Active {
		status += fmt.Sprintf("  ·  auto-refresh every %s", m.poller.Interval())
	}

	parts := []string{PaintHoldings(m.holdingsView, m.cursor, t)}
	if !m.holdingsView.Empty() {
		parts = append(parts, "", PaintTotals(m.holdingsView, t))
	}
	parts = append(parts, "", t.Dim().Render(status))
	return strings.Join(parts, "\n")
}

func (m Model) viewWatchlist() string {
	t := theme.Default
	if len(m.watchlist) == 0 {
		return t.Dim().Render("Watchlist is empty. Press a to add a symbol.")
	}

	var b strings.Builder
	b.WriteString(t.Header().Render("Watching"))
	b.WriteString("\n")
	for i, s := range m.watchlist {
		if i == m.watchCursor {
			b.WriteString(t.Title().Render("› " + s))
		} else {
			b.WriteString(t.Cell().Render("  " + s))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewSettings() string {
	t := theme.Default
	s := m.settings
	if s == nil {
		return t.Dim().Render("Loading settings...")
	}

	orNone := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}

	rows := [][2]string{
		{"Email from", orNone(s.EmailFrom)},
		{"Email to", orNone(s.EmailTo)},
		{"Hard stop", formatSetting(s.HardStop)},
		{"Warning", formatSetting(s.Warning)},
		{"Profit target", formatSetting(s.ProfitTarget)},
		{"Pullback %", formatSetting(s.Pullback)},
		{"RSI max", formatSetting(s.RSIMax)},
	}

	label := t.Dim().Width(16)
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(label.Render(r[0]))
		b.WriteString(t.Cell().Render(r[1]))
		b.WriteString("\n")
	}
	return t.Panel().Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) viewHelp() string {
	h := help.New()
	if m.form != nil {
		return h.ShortHelpView([]key.Binding{formKeys.Submit, formKeys.Next, formKeys.Cancel})
	}
	return h.ShortHelpView(helpFor(m.tab))
}
