package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	sync       key.Binding
	copy       key.Binding
	keepLocal  key.Binding
	keepRemote key.Binding
	keepBoth   key.Binding
	version    key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	sync:       key.NewBinding(key.WithKeys("s")),
	copy:       key.NewBinding(key.WithKeys("c")),
	keepLocal:  key.NewBinding(key.WithKeys("1")),
	keepRemote: key.NewBinding(key.WithKeys("2")),
	keepBoth:   key.NewBinding(key.WithKeys("3")),
	version:    key.NewBinding(key.WithKeys("v")),
	yes:        key.NewBinding(key.WithKeys("y", "enter")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
