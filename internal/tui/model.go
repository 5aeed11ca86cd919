package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/leg100/roadmap/internal/logging"
	"github.com/leg100/roadmap/internal/pubsub"
	"github.com/leg100/roadmap/internal/session"
	"github.com/leg100/roadmap/internal/tui/keys"
)

// focus is the area of the view receiving key presses.
type focus int

const (
	focusTopic focus = iota
	focusSkills
	focusEmail
)

const (
	topicPlaceholder = "Enter the topic you want to learn (e.g., Web Development)"
	emailPlaceholder = "Enter your email address"
)

type Options struct {
	Service Service
	Logger  logging.Interface
	// Context for requests made to the service.
	Context context.Context
	// Topic and Email pre-fill the inputs.
	Topic string
	Email string
	// Search, if true, searches for the pre-filled topic on startup.
	Search bool
	// Dump, if non-nil, receives a dump of every message.
	Dump io.Writer
}

// Model is the top-level model of the roadmap TUI.
type Model struct {
	service Service
	logger  logging.Interface
	ctx     context.Context

	state session.State

	topic  textinput.Model
	email  textinput.Model
	focus  focus
	cursor int

	spinner spinner.Model
	prompt  *Prompt

	showLogs bool
	logs     []logging.Message

	// Either an error or an informational message is rendered in the footer.
	err  error
	info string

	width  int
	height int

	search bool
	dump   io.Writer
}

// New constructs the top-level TUI model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	topic := textinput.New()
	topic.Placeholder = topicPlaceholder
	topic.Prompt = ""
	topic.SetValue(opts.Topic)
	topic.Focus()

	email := textinput.New()
	email.Placeholder = emailPlaceholder
	email.Prompt = ""
	email.SetValue(opts.Email)

	return Model{
		service: opts.Service,
		logger:  opts.Logger,
		ctx:     opts.Context,
		state:   session.New().WithTopic(opts.Topic).WithEmail(opts.Email),
		topic:   topic,
		email:   email,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:  opts.Search,
		dump:    opts.Dump,
	}
}

// State returns the session state.
func (m Model) State() session.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.search {
		cmds = append(cmds, CmdHandler(searchMsg{}))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	if m.prompt != nil {
		if msg, ok := msg.(tea.KeyMsg); ok {
			if !m.prompt.IsAlert() && key.Matches(msg, keys.Global.Quit) {
				// pressing ctrl-c again quits the app
				return m, tea.Quit
			}
			closePrompt, cmd := m.prompt.HandleKey(msg)
			if closePrompt {
				m.prompt = nil
			}
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topic.Width = max(0, m.width-inputOverhead)
		m.email.Width = max(0, m.width-inputOverhead)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case searchMsg:
		return m.startSearch()
	case skillsMsg:
		return m.handleSkills(msg)
	case resourcesMsg:
		return m.handleResources(msg)
	case emailMsg:
		return m.handleEmail(msg)
	case spinner.TickMsg:
		// Keep the spinner spinning as long as a request is outstanding.
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pubsub.Event[logging.Message]:
		m.logs = appendLog(m.logs, msg.Payload)
		return m, nil
	case AlertMsg:
		m.prompt = NewAlert(string(msg))
		return m, nil
	case ErrorMsg:
		if msg.Error != nil {
			err := msg.Error
			msg := fmt.Sprintf(msg.Message, msg.Args...)

			// Both print error in footer as well as log it.
			m.err = fmt.Errorf("%s: %w", msg, err)
			m.info = ""
			m.logger.Error(msg, "error", err)
		}
		return m, nil
	case InfoMsg:
		m.info = string(msg)
		m.err = nil
		return m, nil
	}

	// Forward remaining messages, e.g. cursor blinks, to the prompt and to the
	// focused input.
	var cmds []tea.Cmd
	if m.prompt != nil {
		cmds = append(cmds, m.prompt.HandleBlink(msg))
	}
	cmds = append(cmds, m.updateInput(msg))
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pressing any key makes any info/error message in the footer disappear
	m.info = ""
	m.err = nil

	switch {
	case key.Matches(msg, keys.Global.Quit):
		// ctrl-c quits the app, but not before prompting the user for
		// confirmation.
		var cmd tea.Cmd
		m.prompt, cmd = NewYesNoPrompt("Quit roadmap?", tea.Quit)
		return m, cmd
	case key.Matches(msg, keys.Global.Logs):
		m.showLogs = !m.showLogs
		return m, nil
	case key.Matches(msg, keys.Global.Escape):
		// <esc> closes the logs pane or collapses the expanded skill
		if m.showLogs {
			m.showLogs = false
		} else {
			m.state = m.state.Collapse()
		}
		return m, nil
	case key.Matches(msg, keys.Global.NextFocus):
		return m.setFocus(m.nextFocus(1))
	case key.Matches(msg, keys.Global.PrevFocus):
		return m.setFocus(m.nextFocus(-1))
	case key.Matches(msg, keys.Global.Enter):
		switch m.focus {
		case focusTopic:
			return m.startSearch()
		case focusSkills:
			return m.requestResources()
		case focusEmail:
			return m.startEmail()
		}
	}

	if m.focus == focusSkills {
		last := len(m.state.Skills()) - 1
		switch {
		case key.Matches(msg, keys.Navigation.LineUp):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, keys.Navigation.LineDown):
			m.cursor = max(0, min(last, m.cursor+1))
		case key.Matches(msg, keys.Navigation.GotoTop):
			m.cursor = 0
		case key.Matches(msg, keys.Navigation.GotoBottom):
			m.cursor = max(0, last)
		}
		return m, nil
	}
	return m, m.updateInput(msg)
}

// updateInput sends a message to the focused input, keeping the session state
// in sync with its value.
func (m *Model) updateInput(msg tea.Msg) (cmd tea.Cmd) {
	switch m.focus {
	case focusTopic:
		m.topic, cmd = m.topic.Update(msg)
		m.state = m.state.WithTopic(m.topic.Value())
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		m.state = m.state.WithEmail(m.email.Value())
	}
	return
}

// focusable lists the areas that can currently receive focus. The skills and
// the email input are only available once there are skills.
func (m Model) focusable() []focus {
	if len(m.state.Skills()) == 0 {
		return []focus{focusTopic}
	}
	return []focus{focusTopic, focusSkills, focusEmail}
}

func (m Model) nextFocus(delta int) focus {
	areas := m.focusable()
	for i, f := range areas {
		if f == m.focus {
			return areas[(i+delta+len(areas))%len(areas)]
		}
	}
	return focusTopic
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.topic.Blur()
	m.email.Blur()
	switch f {
	case focusTopic:
		return m, m.topic.Focus()
	case focusEmail:
		return m, m.email.Focus()
	}
	return m, nil
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	state, req, err := m.state.StartSearch()
	switch {
	case errors.Is(err, session.ErrEmptyTopic):
		return m, Alert("Please enter a topic.")
	case err != nil:
		return m, ReportInfo("%s", err.Error())
	}
	m.state = state
	m.logger.Info("searching for skills", "topic", req.Topic)
	return m, tea.Batch(
		fetchSkills(m.ctx, m.service, req),
		m.spinner.Tick,
	)
}

func (m Model) handleSkills(msg skillsMsg) (tea.Model, tea.Cmd) {
	if msg.req.Generation != m.state.Generation() {
		m.logger.Debug("discarding stale skills", "topic", msg.req.Topic)
		return m, nil
	}
	if msg.err != nil {
		m.state = m.state.SkillsFailed(msg.req.Generation)
		return m, ReportError(msg.err, "fetching skills")
	}
	m.state = m.state.SkillsLoaded(msg.req.Generation, msg.skills)
	m.cursor = 0
	m.logger.Info("retrieved skills", "topic", msg.req.Topic, "count", len(msg.skills))
	if len(msg.skills) == 0 {
		m.info = fmt.Sprintf("no skills found for %q", msg.req.Topic)
		if m.focus != focusTopic {
			return m.setFocus(focusTopic)
		}
		return m, nil
	}
	if m.focus == focusTopic {
		return m.setFocus(focusSkills)
	}
	return m, nil
}

func (m Model) requestResources() (tea.Model, tea.Cmd) {
	skills := m.state.Skills()
	if m.cursor >= len(skills) {
		return m, nil
	}
	state, req := m.state.RequestResources(skills[m.cursor].Name)
	m.state = state
	if req == nil {
		return m, nil
	}
	m.logger.Info("retrieving resources", "skill", req.Skill)
	return m, tea.Batch(
		fetchResources(m.ctx, m.service, *req),
		m.spinner.Tick,
	)
}

func (m Model) handleResources(msg resourcesMsg) (tea.Model, tea.Cmd) {
	if msg.req.Generation != m.state.Generation() {
		m.logger.Debug("discarding stale resources", "skill", msg.req.Skill)
		return m, nil
	}
	if msg.err != nil {
		m.state = m.state.ResourcesFailed(msg.req.Generation, msg.req.Skill)
		return m, ReportError(msg.err, "fetching resources for %s", msg.req.Skill)
	}
	m.state = m.state.ResourcesLoaded(msg.req.Generation, msg.req.Skill, msg.resources)
	m.logger.Info("retrieved resources", "skill", msg.req.Skill, "count", len(msg.resources))
	return m, nil
}

func (m Model) startEmail() (tea.Model, tea.Cmd) {
	state, req, err := m.state.StartEmail()
	switch {
	case errors.Is(err, session.ErrEmptyEmail):
		return m, Alert("Please enter your email address.")
	case err != nil:
		return m, ReportInfo("%s", err.Error())
	}
	m.state = state
	m.logger.Info("sending roadmap",
		"email", req.Roadmap.Email,
		"topic", req.Roadmap.Topic,
		"skills", len(req.Roadmap.Skills),
		"resources", req.Roadmap.ResourceCount(),
	)
	return m, tea.Batch(
		sendEmail(m.ctx, m.service, req),
		m.spinner.Tick,
	)
}

func (m Model) handleEmail(msg emailMsg) (tea.Model, tea.Cmd) {
	if msg.req.Generation != m.state.Generation() {
		m.logger.Debug("discarding stale email response", "email", msg.req.Roadmap.Email)
		return m, nil
	}
	if msg.err != nil {
		m.state = m.state.EmailFailed(msg.req.Generation)
		return m, ReportError(msg.err, "sending roadmap to %s", msg.req.Roadmap.Email)
	}
	m.state = m.state.EmailDelivered(msg.req.Generation)
	m.logger.Info("sent roadmap", "email", msg.req.Roadmap.Email, "response", strings.TrimSpace(msg.ack))
	return m, nil
}
