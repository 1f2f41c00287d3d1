package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Alloc     key.Binding
	AllocMany key.Binding
	Free      key.Binding
	FreeRand  key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Alloc: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "allocate"),
		),
		AllocMany: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "allocate 10"),
		),
		Free: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "free newest"),
		),
		FreeRand: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "free random"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
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

// shortHelp lists the bindings shown in the status line.
func (k KeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Alloc, k.AllocMany, k.Free, k.FreeRand, k.Clear, k.Help, k.Quit}
}
