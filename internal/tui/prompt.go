package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var yesKey = key.NewBinding(
	key.WithKeys("y"),
	key.WithHelp("y", "confirm"),
)

// Prompt is a modal widget that captures every key press until it is closed.
// It either asks the user a yes/no question, or merely alerts the user, in
// which case any key closes it.
type Prompt struct {
	model  textinput.Model
	action tea.Cmd
	alert  bool
}

// NewAlert constructs a prompt that closes on any key.
func NewAlert(msg string) *Prompt {
	model := textinput.New()
	model.Prompt = msg
	return &Prompt{model: model, alert: true}
}

// NewYesNoPrompt constructs a prompt asking the user for a yes/no answer. If
// yes is given then the action is invoked.
func NewYesNoPrompt(prompt string, action tea.Cmd) (*Prompt, tea.Cmd) {
	model := textinput.New()
	model.Prompt = fmt.Sprintf("%s (y/N): ", prompt)
	blink := model.Focus()
	return &Prompt{model: model, action: action}, blink
}

// HandleKey handles the user key press, and returns a command to be run, and
// whether the prompt should be closed.
func (p *Prompt) HandleKey(msg tea.KeyMsg) (closePrompt bool, cmd tea.Cmd) {
	if p.alert {
		return true, nil
	}
	if key.Matches(msg, yesKey) {
		return true, p.action
	}
	return true, ReportInfo("chosen not to proceed")
}

// HandleBlink handles the bubbletea blink message.
func (p *Prompt) HandleBlink(msg tea.Msg) (cmd tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		// Ignore key presses, they're handled by HandleKey above.
		return nil
	}
	p.model, cmd = p.model.Update(msg)
	return
}

// IsAlert is true if the prompt is an alert.
func (p *Prompt) IsAlert() bool {
	return p.alert
}

var alertStyle = RoundedBorders.
	BorderForeground(Yellow).
	Padding(1, 3)

func (p *Prompt) View() string {
	if p.alert {
		return alertStyle.Render(
			lipgloss.JoinVertical(lipgloss.Center,
				Bold.Render(p.model.Prompt),
				"",
				Faint.Render("press any key to continue"),
			),
		)
	}
	return p.model.View()
}

func (p *Prompt) HelpBindings() []key.Binding {
	if p.alert {
		return []key.Binding{key.NewBinding(key.WithHelp("any key", "dismiss"))}
	}
	return []key.Binding{
		yesKey,
		key.NewBinding(key.WithHelp("n", "cancel")),
	}
}
