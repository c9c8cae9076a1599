package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/holdings-dashboard/internal/api"
)

type toast struct {
	id      int
	text    string
	isError bool
}

// showToast replaces the current toast. Only the expiry carrying the new
// id can clear it.
func (m *Model) showToast(text string, isError bool) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, text: text, isError: isError}
	return tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) expireToast(id int) {
	if m.toast != nil && m.toast.id == id {
		m.toast = nil
	}
}

// action names a user mutation and decides its toast wording.
type action int

const (
	actionAddHolding action = iota
	actionDeleteHolding
	actionAddWatchlist
	actionDeleteWatchlist
	actionSaveEmail
	actionSaveStrategy
)

type outcome struct {
	success string
	failure string
	// useReason shows the server's reason instead of failure when present.
	useReason bool
}

var outcomes = map[action]outcome{
	actionAddHolding:      {success: "✅ Holding added successfully!", failure: "Failed to add holding", useReason: true},
	actionDeleteHolding:   {success: "✅ Holding deleted successfully!", failure: "Failed to delete holding"},
	actionAddWatchlist:    {success: "✅ Added to watchlist!", failure: "Failed to add to watchlist", useReason: true},
	actionDeleteWatchlist: {success: "✅ Removed from watchlist!", failure: "Failed to remove from watchlist"},
	actionSaveEmail:       {success: "✅ Email settings saved!", failure: "Failed to save settings", useReason: true},
	actionSaveStrategy:    {success: "✅ Strategy settings saved!", failure: "Failed to save settings", useReason: true},
}

// message returns the toast text for a finished mutation.
func (o outcome) message(err error) string {
	if err == nil {
		return o.success
	}
	if reason, ok := api.Reason(err); ok {
		if o.useReason {
			return "❌ " + reason
		}
		return "❌ " + o.failure
	}
	var appErr *api.ApplicationError
	if errors.As(err, &appErr) {
		return "❌ " + o.failure
	}
	return "❌ Error: " + api.Detail(err)
}
