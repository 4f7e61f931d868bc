package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Delete key.Binding
	Grab   key.Binding
	Switch key.Binding
	Daily  key.Binding
	Global key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:    key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Delete: key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Grab:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "daily/global")),
		Daily:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "daily")),
		Global: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "global")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Grab, k.Switch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Delete},
		{k.Grab, k.Switch, k.Daily, k.Global},
		{k.Copy, k.Help, k.Quit},
	}
}

// dragHelp is shown while an item is picked up with the keyboard.
type dragHelp struct{}

func (d dragHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m/enter", "drop")),
	}
}

func (d dragHelp) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }
