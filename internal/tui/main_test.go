package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Disable colors so views can be compared against plain text.
	lipgloss.SetColorProfile(termenv.Ascii)
}
