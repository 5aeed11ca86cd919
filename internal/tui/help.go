package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
)

var (
	shortHelpKeyStyle  = Bold.Foreground(HelpKey).Margin(0, 1, 0, 0)
	shortHelpDescStyle = Regular.Foreground(HelpDesc).Margin(0, 3, 0, 0)
)

// shortHelpView renders help for key bindings on a single line, dropping any
// bindings that don't fit within the maximum width.
func shortHelpView(bindings []key.Binding, maxWidth int) string {
	var (
		pairs []string
		total int
	)
	for _, b := range bindings {
		if b.Help().Key == "" {
			continue
		}
		pair := lipgloss.JoinHorizontal(lipgloss.Left,
			shortHelpKeyStyle.Render(b.Help().Key),
			shortHelpDescStyle.Render(b.Help().Desc),
		)
		total += ansi.PrintableRuneWidth(pair)
		if total > maxWidth {
			break
		}
		pairs = append(pairs, pair)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pairs...)
}
