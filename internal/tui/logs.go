package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/roadmap/internal/logging"
)

const (
	logTimeFormat = "15:04:05.000"
	// maxLogs is the number of log messages retained for the logs pane.
	maxLogs = 1000
)

// appendLog adds a message, discarding the oldest once maxLogs is exceeded.
func appendLog(logs []logging.Message, msg logging.Message) []logging.Message {
	logs = append(logs, msg)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	return logs
}

// logsView renders log messages, newest first, up to the given height.
func logsView(logs []logging.Message, w, h int) string {
	sorted := slices.Clone(logs)
	slices.SortFunc(sorted, logging.BySerialDesc)

	lines := []string{TitleStyle.Render("Logs")}
	if len(sorted) == 0 {
		lines = append(lines, Faint.Render("no logs yet"))
	}
	for _, msg := range sorted {
		if len(lines) >= h {
			break
		}
		lines = append(lines, renderLog(msg, w))
	}
	return strings.Join(lines, "\n")
}

func renderLog(msg logging.Message, w int) string {
	var levelColor lipgloss.TerminalColor
	switch msg.Level {
	case "ERROR":
		levelColor = ErrorLogLevel
	case "WARN":
		levelColor = WarnLogLevel
	case "DEBUG":
		levelColor = DebugLogLevel
	case "INFO":
		levelColor = InfoLogLevel
	}

	// combine message and attributes, separated by spaces, with each
	// attribute key/value joined with a '='
	var b strings.Builder
	b.WriteString(msg.Message)
	for _, attr := range msg.Attributes {
		b.WriteRune(' ')
		b.WriteString(Faint.Render(attr.Key + "="))
		b.WriteString(attr.Value)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left,
		Padded.Render(msg.Time.Format(logTimeFormat)),
		Bold.Foreground(levelColor).Width(len("ERROR")+2).Padding(0, 1).Render(msg.Level),
		b.String(),
	)
	return Regular.Inline(true).MaxWidth(w).Render(line)
}
