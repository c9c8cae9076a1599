package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/api"
	"github.com/aristath/holdings-dashboard/internal/holdings"
	"github.com/aristath/holdings-dashboard/internal/poller"
	"github.com/aristath/holdings-dashboard/internal/render"
)

// Client is the subset of the holdings service the dashboard talks to.
type Client interface {
	Holdings(ctx context.Context) ([]holdings.HoldingRecord, error)
	AddHolding(ctx context.Context, h api.NewHolding) error
	DeleteHolding(ctx context.Context, symbol string) error
	Watchlist(ctx context.Context) ([]string, error)
	AddWatchlist(ctx context.Context, symbol string) error
	DeleteWatchlist(ctx context.Context, symbol string) error
	UpdateConfig(ctx context.Context, update api.ConfigUpdate) error
	Config(ctx context.Context) (api.Settings, error)
}

// Tab identifies one of the dashboard views.
type Tab int

const (
	TabHoldings Tab = iota
	TabWatchlist
	TabSettings
)

var tabNames = []string{"Holdings", "Watchlist", "Settings"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "Unknown"
}

// Options configures a Model.
type Options struct {
	APIURL          string
	RefreshInterval time.Duration
	ToastDuration   time.Duration
	DiscardStale    bool
	Log             zerolog.Logger
	Now             func() time.Time
}

type Model struct {
	client Client
	opts   Options
	log    zerolog.Logger
	poller *poller.Controller

	// Data
	tab          Tab
	holdingsView render.ViewModel
	loaded       bool
	issued       uint64 // sequence of the last holdings request sent
	rendered     uint64 // sequence of the response currently on screen
	watchlist    []string
	settings     *api.Settings

	// UI state
	width       int
	height      int
	cursor      int
	watchCursor int
	form        *form
	confirm     *confirmation
	toast       *toast
	toastSeq    int
}

// Messages

// showTabMsg activates a tab. Init sends it for the initial tab.
type showTabMsg struct {
	tab Tab
}

type pollTickMsg struct {
	tick poller.Tick
}

type holdingsMsg struct {
	seq     uint64
	cycle   string
	records []holdings.HoldingRecord
	err     error
}

type watchlistMsg struct {
	symbols []string
	err     error
}

type settingsMsg struct {
	settings api.Settings
	err      error
}

type mutationMsg struct {
	action action
	symbol string
	err    error
}

type toastExpiredMsg struct {
	id int
}

func NewModel(client Client, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	return Model{
		client: client,
		opts:   opts,
		log:    opts.Log.With().Str("component", "dashboard").Logger(),
		poller: poller.New(opts.RefreshInterval),
		tab:    TabHoldings,
	}
}

func (m Model) Init() tea.Cmd {
	tab := m.tab
	return func() tea.Msg { return showTabMsg{tab: tab} }
}

// Accessors used by the paint step and tests.

func (m Model) ActiveTab() Tab                 { return m.tab }
func (m Model) HoldingsView() render.ViewModel { return m.holdingsView }
func (m Model) PollerState() poller.State      { return m.poller.State() }

// Commands

// fetchHoldings issues one holdings request. Requests are not serialized:
// several can be in flight and each answers with its own sequence number.
func (m *Model) fetchHoldings() tea.Cmd {
	m.issued++
	seq := m.issued
	cycle := uuid.NewString()
	client := m.client
	log := m.log

	return func() tea.Msg {
		log.Debug().Str("cycle", cycle).Uint64("seq", seq).Msg("Fetching holdings")
		records, err := client.Holdings(api.WithRequestID(context.Background(), cycle))
		return holdingsMsg{seq: seq, cycle: cycle, records: records, err: err}
	}
}

func schedulePoll(t poller.Tick) tea.Cmd {
	return tea.Tick(t.Interval, func(time.Time) tea.Msg {
		return pollTickMsg{tick: t}
	})
}

func (m Model) loadWatchlist() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		symbols, err := client.Watchlist(context.Background())
		return watchlistMsg{symbols: symbols, err: err}
	}
}

func (m Model) loadSettings() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		s, err := client.Config(context.Background())
		return settingsMsg{settings: s, err: err}
	}
}
