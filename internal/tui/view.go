package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/go-runewidth"
	"github.com/leg100/reflow/truncate"
	"github.com/leg100/reflow/wordwrap"
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/leg100/roadmap/internal/session"
	"github.com/leg100/roadmap/internal/tui/keys"
	"github.com/leg100/roadmap/internal/version"
)

const (
	headerHeight         = 2
	horizontalRuleHeight = 1
	messageFooterHeight  = 1

	labelWidth = 8
	// inputOverhead is the width taken up by everything on an input's line
	// besides the input itself.
	inputOverhead = labelWidth + 20

	title = "Tariq - Roadmap Generator"
)

var (
	labelStyle        = Bold.Width(labelWidth)
	focusedLabelStyle = labelStyle.Foreground(TitleColor)
	buttonStyle       = Bold.Padding(0, 1).MarginLeft(2)
	busyStyle         = Faint.Padding(0, 1).MarginLeft(2)
	sectionTitleStyle = Bold.MarginTop(1)
	successStyle      = Regular.Foreground(SuccessColor)
	failureStyle      = Regular.Foreground(FailureColor)
	linkStyle         = Regular.Foreground(LinkColor)
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var content string
	switch {
	case m.prompt != nil && m.prompt.IsAlert():
		content = lipgloss.Place(
			m.width, m.viewHeight(),
			lipgloss.Center, lipgloss.Center,
			m.prompt.View(),
		)
	case m.showLogs:
		content = logsView(m.logs, m.width, m.viewHeight())
	default:
		content = m.bodyView()
	}

	versionInfo := Faint.Render(version.Version)
	titleLine := lipgloss.JoinHorizontal(lipgloss.Left,
		TitleStyle.Padding(0, 1).Render(title),
		Regular.
			Width(max(0, m.width-width(title)-2)).
			Align(lipgloss.Right).
			Render(versionInfo),
	)
	helpLine := Padded.Render(shortHelpView(m.helpBindings(), m.width-2))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		// header
		Regular.MaxWidth(m.width).Render(titleLine),
		Regular.MaxWidth(m.width).Render(helpLine),
		// horizontal rule
		strings.Repeat("─", m.width),
		// content
		Regular.
			Height(m.viewHeight()).
			MaxHeight(m.viewHeight()).
			Render(content),
		// horizontal rule
		strings.Repeat("─", m.width),
		// footer
		m.footerView(),
	)
}

// viewHeight retrieves the height available beneath the header and above the
// footer.
func (m Model) viewHeight() int {
	return max(0, m.height-headerHeight-2*horizontalRuleHeight-messageFooterHeight)
}

func (m Model) helpBindings() []key.Binding {
	if m.prompt != nil {
		return m.prompt.HelpBindings()
	}
	bindings := []key.Binding{keys.Global.Enter}
	if m.focus == focusSkills {
		bindings = append(bindings, keys.Navigation.LineUp, keys.Navigation.LineDown)
	}
	return append(bindings, keys.KeyMapToSlice(keys.Global)[1:]...)
}

func (m Model) footerView() string {
	skills := len(m.state.Skills())
	metadata := Padded.Render(fmt.Sprintf("%d skills", skills))
	if skills == 1 {
		metadata = Padded.Render("1 skill")
	}

	var msg string
	switch {
	case m.prompt != nil && !m.prompt.IsAlert():
		msg = Padded.Render(m.prompt.View())
	case m.err != nil:
		msg = Padded.Foreground(Red).Render("Error: " + m.err.Error())
	case m.info != "":
		msg = Padded.Render(m.info)
	}
	avail := max(0, m.width-width(metadata))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Regular.Inline(true).MaxWidth(avail).Width(avail).Render(msg),
		metadata,
	)
}

// bodyView renders the topic input at the top, followed by the skills and the
// email section, scrolling the latter to keep the focused item visible.
func (m Model) bodyView() string {
	topicSection := lipgloss.JoinVertical(lipgloss.Left,
		m.inputLine("Topic", m.topic.View(), m.focus == focusTopic, m.searchButton()),
		"",
	)
	avail := max(0, m.viewHeight()-height(topicSection))

	var (
		blocks []string
		// start and end line of the block to keep visible
		start, end int
		lines      int
	)
	skills := m.state.Skills()
	for i, skill := range skills {
		card := m.skillCard(i, skill)
		if m.focus == focusSkills && i == m.cursor {
			start, end = lines, lines+height(card)
		}
		blocks = append(blocks, card)
		lines += height(card)
	}
	if len(skills) > 0 {
		email := m.emailSection()
		if m.focus == focusEmail {
			start, end = lines, lines+height(email)
		}
		blocks = append(blocks, email)
	}
	scrolled := scroll(strings.Join(blocks, "\n"), start, end, avail)
	return lipgloss.JoinVertical(lipgloss.Left, topicSection, scrolled)
}

// scroll returns the window of h lines of content that keeps the lines from
// start to end visible, favouring start if they don't all fit.
func scroll(content string, start, end, h int) string {
	if content == "" || h == 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	offset := 0
	if end > h {
		offset = end - h
	}
	if start < offset {
		offset = start
	}
	offset = min(offset, max(0, len(lines)-h))
	return strings.Join(lines[offset:min(len(lines), offset+h)], "\n")
}

func (m Model) inputLine(label, input string, focused bool, button string) string {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	return Padded.Render(lipgloss.JoinHorizontal(lipgloss.Left,
		style.Render(label),
		input,
		button,
	))
}

func (m Model) searchButton() string {
	if m.state.Searching() {
		return busyStyle.Render(m.spinner.View() + " Loading...")
	}
	return buttonStyle.Render("[ Search ]")
}

func (m Model) emailButton() string {
	if m.state.EmailStatus() == session.EmailSending {
		return busyStyle.Render(m.spinner.View() + " Sending...")
	}
	return buttonStyle.Render("[ Send Email ]")
}

func (m Model) skillCard(i int, skill roadmap.Skill) string {
	inner := max(10, m.width-6)

	var action string
	switch {
	case m.state.IsLoading(skill.Name):
		action = Faint.Render(m.spinner.View() + " Loading...")
	case m.state.IsExpanded(skill.Name):
		action = Faint.Render("[ Resources ]")
	default:
		action = Faint.Render("[ Get Resources ]")
	}
	name := runewidth.Truncate(skill.Name, max(0, inner-width(action)-1), "…")
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		Bold.Width(max(0, inner-width(action))).Render(name),
		action,
	)

	lines := []string{header}
	if skill.Description != "" {
		lines = append(lines, wordwrap.String(skill.Description, inner))
	}
	if m.state.IsExpanded(skill.Name) {
		resources, _ := m.state.Resources(skill.Name)
		lines = append(lines, "", TitleStyle.Render("Learning Resources"))
		if len(resources) == 0 {
			lines = append(lines, Faint.Render("No resources available."))
		}
		for _, r := range resources {
			entry := fmt.Sprintf("• %s (%s)", r.Title, r.Type)
			lines = append(lines,
				runewidth.Truncate(entry, inner, "…"),
				"  "+linkStyle.Render(truncate.StringWithTail(r.URL, uint(max(0, inner-2)), "…")),
			)
		}
	}

	var border lipgloss.TerminalColor = CardBorder
	if m.focus == focusSkills && i == m.cursor {
		border = CurrentCardBorder
	}
	return RoundedBorders.
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) emailSection() string {
	lines := []string{
		sectionTitleStyle.Padding(0, 1).Render("Send roadmap via email"),
		m.inputLine("Email", m.email.View(), m.focus == focusEmail, m.emailButton()),
	}
	switch m.state.EmailStatus() {
	case session.EmailSent:
		lines = append(lines, successStyle.Padding(0, 1).Render("Email sent successfully!"))
	case session.EmailError:
		lines = append(lines, failureStyle.Padding(0, 1).Render("Failed to send email. Please try again."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
