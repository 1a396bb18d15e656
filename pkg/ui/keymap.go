package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Execute     key.Binding
	Clear       key.Binding
	ShowPages   key.Binding
	ShowStats   key.Binding
	Help        key.Binding
	Quit        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding
}

var keys = keyMap{
	Execute: key.NewBinding(
		key.WithKeys("ctrl+r", "ctrl+enter"),
		key.WithHelp("ctrl+r", "run statements"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear editor"),
	),
	ShowPages: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "show pages"),
	),
	ShowStats: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "show stats"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+c", "quit"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "scroll results up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "scroll results down"),
	),
	HistoryUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "older statements"),
	),
	HistoryDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "newer statements"),
	),
}

// FullHelp groups the bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Execute, k.Clear, k.ShowPages, k.ShowStats},
		{k.ScrollUp, k.ScrollDown, k.HistoryUp, k.HistoryDown},
		{k.Help, k.Quit},
	}
}
