package tui

import "github.com/charmbracelet/lipgloss"

var (
	Regular        = lipgloss.NewStyle()
	Bold           = Regular.Bold(true)
	Faint          = Regular.Faint(true)
	Padded         = Regular.Padding(0, 1)
	RoundedBorders = Regular.Border(lipgloss.RoundedBorder())

	TitleStyle = Bold.Foreground(TitleColor)

	width  = lipgloss.Width
	height = lipgloss.Height
)
