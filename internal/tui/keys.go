package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings handled by the top-level model. List actions
// live in the habits component.
type KeyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	TabJumps []key.Binding // one per tab, in tab order
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func DefaultKeyMap() KeyMap {
	jumps := make([]key.Binding, len(tabTitles))
	for i, title := range tabTitles {
		n := string(rune('1' + i))
		jumps[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, title))
	}
	return KeyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		TabJumps: jumps,
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "archive")),
		Cancel:   key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "keep")),
	}
}
