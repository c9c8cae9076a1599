package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Holdings  key.Binding
	Watchlist key.Binding
	Settings  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Refresh   key.Binding
	Add       key.Binding
	Delete    key.Binding
	Up        key.Binding
	Down      key.Binding
	Email     key.Binding
	Strategy  key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Holdings:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "holdings")),
	Watchlist: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "watchlist")),
	Settings:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "settings")),
	NextTab:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh prices")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Email:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "email settings")),
	Strategy:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "strategy settings")),
}

type formKeyMap struct {
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Cancel key.Binding
}

var formKeys = formKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / submit")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
}

// helpFor lists the bindings shown in the footer for a tab.
func helpFor(tab Tab) []key.Binding {
	common := []key.Binding{keys.NextTab, keys.Quit}
	switch tab {
	case TabHoldings:
		return append([]key.Binding{keys.Refresh, keys.Add, keys.Delete}, common...)
	case TabWatchlist:
		return append([]key.Binding{keys.Add, keys.Delete}, common...)
	case TabSettings:
		return append([]key.Binding{keys.Email, keys.Strategy}, common...)
	default:
		return common
	}
}
