package app

import "github.com/charmbracelet/bubbles/key"

// keyMap maps terminal keys onto the stick's four buttons plus a few host
// shortcuts.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Tap    key.Binding
	Shake  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap(demo bool) keyMap {
	km := keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Tap: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tap"),
		),
		Shake: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "shake"),
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
	// Tap and shake drive the mock sensor only.
	km.Tap.SetEnabled(demo)
	km.Shake.SetEnabled(demo)
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Tap, k.Shake, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Tap, k.Shake, k.Help, k.Quit},
	}
}
