package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Filters
	CycleType  key.Binding
	LowDown    key.Binding
	LowUp      key.Binding
	HighDown   key.Binding
	HighUp     key.Binding
	Countries  key.Binding
	Genres     key.Binding
	Search     key.Binding
	ToggleStat key.Binding
	Reset      key.Binding

	// Selection
	Select key.Binding
	Clear  key.Binding

	// Actions
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),

		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle type"),
		),
		LowDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "from year -1"),
		),
		LowUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "from year +1"),
		),
		HighDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "to year -1"),
		),
		HighUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "to year +1"),
		),
		Countries: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "countries"),
		),
		Genres: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genres"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ToggleStat: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "extended stats"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "clear details"),
		),

		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleType, k.Search, k.Countries, k.Genres, k.Select, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Clear},
		{k.CycleType, k.LowDown, k.LowUp, k.HighDown, k.HighUp},
		{k.Countries, k.Genres, k.Search, k.ToggleStat, k.Reset},
		{k.Export, k.Help, k.Quit},
	}
}
