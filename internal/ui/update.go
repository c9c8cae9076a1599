package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/holdings-dashboard/internal/api"
	"github.com/aristath/holdings-dashboard/internal/holdings"
	"github.com/aristath/holdings-dashboard/internal/render"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case showTabMsg:
		return m.showTab(msg.tab)

	case pollTickMsg:
		if !m.poller.Accept(msg.tick) {
			m.log.Debug().Uint64("handle", msg.tick.Handle).Msg("Dropping stale refresh tick")
			return m, nil
		}
		return m, tea.Batch(m.fetchHoldings(), schedulePoll(msg.tick))

	case holdingsMsg:
		return m.applyHoldings(msg)

	case watchlistMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("Failed to load watchlist")
			return m, m.showToast("❌ Error loading watchlist", true)
		}
		m.watchlist = msg.symbols
		m.watchCursor = clamp(m.watchCursor, len(m.watchlist))
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("Failed to load settings")
			return m, m.showToast("❌ Error loading settings", true)
		}
		s := msg.settings
		m.settings = &s
		return m, nil

	case mutationMsg:
		return m.applyMutation(msg)

	case toastExpiredMsg:
		m.expireToast(msg.id)
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.handleConfirmKey(msg)
		}
		if m.form != nil {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// showTab activates tab. The holdings tab owns the refresh cycle: it
// starts on activation and stops whenever another tab is shown.
func (m Model) showTab(tab Tab) (Model, tea.Cmd) {
	m.tab = tab
	m.form = nil
	m.confirm = nil

	switch tab {
	case TabHoldings:
		tick := m.poller.Start()
		m.log.Debug().Uint64("handle", tick.Handle).Dur("interval", tick.Interval).Msg("Refresh started")
		return m, tea.Batch(m.fetchHoldings(), schedulePoll(tick))
	case TabWatchlist:
		m.poller.Stop()
		return m, m.loadWatchlist()
	case TabSettings:
		m.poller.Stop()
		return m, m.loadSettings()
	}

	m.poller.Stop()
	return m, nil
}

// applyHoldings swaps in the view for a completed fetch. Failures keep the
// previous view on screen. Responses are applied in arrival order unless
// stale responses are being discarded.
func (m Model) applyHoldings(msg holdingsMsg) (Model, tea.Cmd) {
	log := m.log.With().Str("cycle", msg.cycle).Uint64("seq", msg.seq).Logger()

	if msg.err != nil {
		log.Error().Err(msg.err).Msg("Failed to load holdings")
		return m, m.showToast("❌ Error loading holdings: "+api.Detail(msg.err), true)
	}
	if m.opts.DiscardStale && msg.seq < m.rendered {
		log.Debug().Uint64("rendered", m.rendered).Msg("Discarding out of order response")
		return m, nil
	}

	rows, totals := holdings.Derive(msg.records)
	m.holdingsView = render.Build(rows, totals, m.opts.Now())
	m.rendered = msg.seq
	m.loaded = true
	m.cursor = clamp(m.cursor, len(m.holdingsView.Rows))

	log.Debug().Int("rows", len(rows)).Int("unpriced", totals.Unpriced).Msg("Holdings rendered")
	return m, nil
}

func (m Model) applyMutation(msg mutationMsg) (Model, tea.Cmd) {
	o := outcomes[msg.action]
	text := o.message(msg.err)

	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("symbol", msg.symbol).Msg("Mutation failed")
		if m.form != nil {
			m.form.submitting = false
		}
		return m, m.showToast(text, true)
	}

	m.form = nil
	cmds := []tea.Cmd{m.showToast(text, false)}

	switch msg.action {
	case actionAddHolding, actionDeleteHolding:
		cmds = append(cmds, m.fetchHoldings())
	case actionAddWatchlist, actionDeleteWatchlist:
		cmds = append(cmds, m.loadWatchlist())
	case actionSaveEmail, actionSaveStrategy:
		cmds = append(cmds, m.loadSettings())
	}
	return m, tea.Batch(cmds...)
}

// Key handling

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, keys.Holdings):
		return m.showTab(TabHoldings)
	case key.Matches(msg, keys.Watchlist):
		return m.showTab(TabWatchlist)
	case key.Matches(msg, keys.Settings):
		return m.showTab(TabSettings)
	case key.Matches(msg, keys.NextTab):
		return m.showTab((m.tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, keys.PrevTab):
		return m.showTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	switch m.tab {
	case TabHoldings:
		switch {
		case key.Matches(msg, keys.Refresh):
			return m, tea.Batch(m.fetchHoldings(), m.showToast("🔄 Prices refreshed!", false))
		case key.Matches(msg, keys.Add):
			return m.openForm(formAddHolding)
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.holdingsView.Rows) {
				m.confirm = &confirmation{action: actionDeleteHolding, symbol: m.holdingsView.Rows[m.cursor].Symbol}
			}
		}
	case TabWatchlist:
		switch {
		case key.Matches(msg, keys.Add):
			return m.openForm(formAddWatchlist)
		case key.Matches(msg, keys.Delete):
			if m.watchCursor < len(m.watchlist) {
				m.confirm = &confirmation{action: actionDeleteWatchlist, symbol: m.watchlist[m.watchCursor]}
			}
		}
	case TabSettings:
		switch {
		case key.Matches(msg, keys.Email):
			return m.openForm(formEmail)
		case key.Matches(msg, keys.Strategy):
			return m.openForm(formStrategy)
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.tab {
	case TabHoldings:
		m.cursor = clamp(m.cursor+delta, len(m.holdingsView.Rows))
	case TabWatchlist:
		m.watchCursor = clamp(m.watchCursor+delta, len(m.watchlist))
	}
}

func (m Model) openForm(kind formKind) (Model, tea.Cmd) {
	m.form = newForm(kind, m.settings)
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.poller.Stop()
		return m, tea.Quit
	}
	if m.form.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, formKeys.Cancel):
		m.form = nil
		return m, nil
	case key.Matches(msg, formKeys.Submit):
		if m.form.onLastField() {
			return m.submitForm()
		}
		return m, m.form.next()
	case key.Matches(msg, formKeys.Next):
		return m, m.form.next()
	case key.Matches(msg, formKeys.Prev):
		return m, m.form.prev()
	}
	return m, m.form.update(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		c := *m.confirm
		m.confirm = nil
		return m, m.mutate(c.action, c.symbol, func(ctx context.Context, client Client) error {
			if c.action == actionDeleteHolding {
				return client.DeleteHolding(ctx, c.symbol)
			}
			return client.DeleteWatchlist(ctx, c.symbol)
		})
	case key.Matches(msg, confirmKeys.No):
		m.confirm = nil
	}
	return m, nil
}

// submitForm turns the open form into a service call. Input that does not
// parse as a number is reported without contacting the service.
func (m Model) submitForm() (Model, tea.Cmd) {
	f := m.form

	switch f.kind {
	case formAddHolding:
		nums, err := f.numbers()
		if err != nil {
			return m, m.showToast("❌ "+capitalize(err.Error()), true)
		}
		h := api.NewHolding{Symbol: f.value(0), Shares: nums[0], AvgCost: nums[1]}
		f.submitting = true
		return m, m.mutate(actionAddHolding, h.Symbol, func(ctx context.Context, client Client) error {
			return client.AddHolding(ctx, h)
		})

	case formAddWatchlist:
		symbol := f.value(0)
		f.submitting = true
		return m, m.mutate(actionAddWatchlist, symbol, func(ctx context.Context, client Client) error {
			return client.AddWatchlist(ctx, symbol)
		})

	case formEmail:
		from, to := f.value(0), f.value(1)
		f.submitting = true
		return m, m.mutate(actionSaveEmail, "", func(ctx context.Context, client Client) error {
			return client.UpdateConfig(ctx, api.ConfigUpdate{EmailFrom: &from, EmailTo: &to})
		})

	case formStrategy:
		nums, err := f.numbers()
		if err != nil {
			return m, m.showToast("❌ "+capitalize(err.Error()), true)
		}
		update := api.ConfigUpdate{
			HardStop:     &nums[0],
			Warning:      &nums[1],
			ProfitTarget: &nums[2],
			Pullback:     &nums[3],
			RSIMax:       &nums[4],
		}
		f.submitting = true
		return m, m.mutate(actionSaveStrategy, "", func(ctx context.Context, client Client) error {
			return client.UpdateConfig(ctx, update)
		})
	}
	return m, nil
}

func (m Model) mutate(a action, symbol string, call func(context.Context, Client) error) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return mutationMsg{action: a, symbol: symbol, err: call(context.Background(), client)}
	}
}

// clamp keeps a cursor inside [0, n).
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
