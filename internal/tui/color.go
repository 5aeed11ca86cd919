package tui

import "github.com/charmbracelet/lipgloss"

const (
	Red         = lipgloss.Color("#FF5353")
	Yellow      = lipgloss.Color("#DBBD70")
	Green       = lipgloss.Color("34")
	LightGreen  = lipgloss.Color("86")
	Blue        = lipgloss.Color("63")
	DeepBlue    = lipgloss.Color("39")
	LighterGrey = lipgloss.Color("250")
)

var (
	DebugLogLevel = Blue
	InfoLogLevel  = lipgloss.AdaptiveColor{Dark: string(LightGreen), Light: string(Green)}
	ErrorLogLevel = Red
	WarnLogLevel  = Yellow

	HelpKey = lipgloss.AdaptiveColor{
		Light: "#909090",
		Dark:  "#626262",
	}
	HelpDesc = lipgloss.AdaptiveColor{
		Light: "#B2B2B2",
		Dark:  "#4A4A4A",
	}

	TitleColor = lipgloss.AdaptiveColor{
		Dark:  string(DeepBlue),
		Light: string(Blue),
	}

	CardBorder = lipgloss.AdaptiveColor{
		Dark:  "240",
		Light: string(LighterGrey),
	}
	CurrentCardBorder = Blue

	SuccessColor = lipgloss.AdaptiveColor{Dark: string(LightGreen), Light: string(Green)}
	FailureColor = Red
	LinkColor    = DeepBlue
)
