package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/holdings-dashboard/internal/api"
	"github.com/aristath/holdings-dashboard/internal/theme"
)

type formKind int

const (
	formAddHolding formKind = iota
	formAddWatchlist
	formEmail
	formStrategy
)

type field struct {
	label   string
	input   textinput.Model
	numeric bool
	upper   bool
}

type form struct {
	kind       formKind
	title      string
	fields     []field
	focus      int
	submitting bool
}

func newField(label, placeholder string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	return field{label: label, input: ti}
}

func numericField(label, placeholder string) field {
	f := newField(label, placeholder, 20)
	f.numeric = true
	return f
}

func symbolField(placeholder string) field {
	f := newField("Symbol", placeholder, 10)
	f.upper = true
	return f
}

func formatSetting(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// newForm builds a form of the given kind. Settings forms are prefilled
// from the last loaded configuration when one is available.
func newForm(kind formKind, settings *api.Settings) *form {
	f := &form{kind: kind}

	switch kind {
	case formAddHolding:
		f.title = "Add Holding"
		f.fields = []field{
			symbolField("e.g. NVDA"),
			numericField("Shares", "e.g. 1.121"),
			numericField("Avg Cost", "e.g. 183.27"),
		}
	case formAddWatchlist:
		f.title = "Add to Watchlist"
		f.fields = []field{symbolField("e.g. SPY")}
	case formEmail:
		f.title = "Email Settings"
		f.fields = []field{
			newField("From", "bot@example.com", 120),
			newField("To", "you@example.com", 120),
		}
		if settings != nil {
			f.fields[0].input.SetValue(settings.EmailFrom)
			f.fields[1].input.SetValue(settings.EmailTo)
		}
	case formStrategy:
		f.title = "Strategy Settings"
		f.fields = []field{
			numericField("Hard Stop", "0.91"),
			numericField("Warning", "0.95"),
			numericField("Profit Target", "1.30"),
			numericField("Pullback %", "8.0"),
			numericField("RSI Max", "65"),
		}
		if settings != nil {
			values := []float64{settings.HardStop, settings.Warning, settings.ProfitTarget, settings.Pullback, settings.RSIMax}
			for i, v := range values {
				f.fields[i].input.SetValue(formatSetting(v))
			}
		}
	}

	f.fields[0].input.Focus()
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *form) onLastField() bool {
	return f.focus == len(f.fields)-1
}

// update forwards a key to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	fld := &f.fields[f.focus]
	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	if fld.upper {
		if v := fld.input.Value(); v != strings.ToUpper(v) {
			fld.input.SetValue(strings.ToUpper(v))
		}
	}
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// number parses field i, reporting the field label on failure.
func (f *form) number(i int) (float64, error) {
	v, err := strconv.ParseFloat(f.value(i), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s", f.fields[i].label)
	}
	return v, nil
}

func (f *form) numbers() ([]float64, error) {
	var out []float64
	for i, fld := range f.fields {
		if !fld.numeric {
			continue
		}
		v, err := f.number(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *form) view(t theme.Theme) string {
	var b strings.Builder
	b.WriteString(t.Title().Render(f.title))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, fld := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(fld.label))
	}
	label := t.Dim().Width(labelWidth + 2)

	for _, fld := range f.fields {
		b.WriteString(label.Render(fld.label + ":"))
		b.WriteString(fld.input.View())
		b.WriteString("\n")
	}

	if f.submitting {
		b.WriteString("\n")
		b.WriteString(t.Dim().Render("Saving..."))
	}
	return t.Panel().Render(b.String())
}

// confirmation is a pending destructive action awaiting y/n.
type confirmation struct {
	action action
	symbol string
}

func (c confirmation) prompt() string {
	switch c.action {
	case actionDeleteHolding:
		return fmt.Sprintf("Delete %s from holdings?", c.symbol)
	case actionDeleteWatchlist:
		return fmt.Sprintf("Remove %s from watchlist?", c.symbol)
	default:
		return "Are you sure?"
	}
}
