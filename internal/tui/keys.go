package tui

import (
	key "github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Help    key.Binding
	Filter  key.Binding
	Picker  key.Binding
	Record  key.Binding
	Pan     key.Binding
	Zoom    key.Binding
	Reset   key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Select  key.Binding
	Close   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:    key.NewBinding(key.WithKeys("backspace", "esc", "b"), key.WithHelp("b", "back")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Filter:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6"), key.WithHelp("0-6", "continent")),
		Picker:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "countries")),
		Record:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "table")),
		Pan:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan")),
		Zoom:    key.NewBinding(key.WithKeys("+", "=", "-", "_"), key.WithHelp("+/-", "zoom")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Up:      key.NewBinding(key.WithKeys("up")),
		Down:    key.NewBinding(key.WithKeys("down")),
		Left:    key.NewBinding(key.WithKeys("left")),
		Right:   key.NewBinding(key.WithKeys("right")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "=")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// viewKeys is the help.KeyMap of one screen: the scene's own bindings
// followed by the host keys that apply to it.
type viewKeys struct {
	scene  []key.Binding
	global []key.Binding
}

func (k viewKeys) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, k.scene...), k.global...)
}

func (k viewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.scene, k.global}
}
