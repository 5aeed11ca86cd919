package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type global struct {
	Enter     key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Escape    key.Binding
	Logs      key.Binding
	Quit      key.Binding
}

// Global keys are available regardless of which area has focus. None of them
// are printable, so they never collide with typing into an input.
var Global = global{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	PrevFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "collapse/back"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("^l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "exit"),
	),
}
