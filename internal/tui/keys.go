package tui

import "github.com/charmbracelet/bubbles/key"

// Notepad shortcuts avoid the keys the textarea already binds.
type keyMap struct {
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	save    key.Binding
	passwd  key.Binding
	wipe    key.Binding
	copy    key.Binding
	lock    key.Binding
	retry   key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	save:    key.NewBinding(key.WithKeys("ctrl+s")),
	passwd:  key.NewBinding(key.WithKeys("ctrl+r")),
	wipe:    key.NewBinding(key.WithKeys("ctrl+x")),
	copy:    key.NewBinding(key.WithKeys("ctrl+y")),
	lock:    key.NewBinding(key.WithKeys("ctrl+l")),
	retry:   key.NewBinding(key.WithKeys("r", "R")),
	yes:     key.NewBinding(key.WithKeys("y", "Y")),
	no:      key.NewBinding(key.WithKeys("n", "N")),
}
