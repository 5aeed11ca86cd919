package tui

import (
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/leg100/roadmap/internal/session"
)

type InfoMsg string

type ErrorMsg struct {
	Error   error
	Message string
	Args    []any
}

func NewErrorMsg(err error, msg string, args ...any) ErrorMsg {
	return ErrorMsg{
		Error:   err,
		Message: msg,
		Args:    args,
	}
}

// AlertMsg opens a modal alert.
type AlertMsg string

// searchMsg starts a search for the current topic, as if the user had pressed
// enter on the topic input.
type searchMsg struct{}

// skillsMsg carries the result of a skills request.
type skillsMsg struct {
	req    session.SkillsRequest
	skills []roadmap.Skill
	err    error
}

// resourcesMsg carries the result of a resources request.
type resourcesMsg struct {
	req       session.ResourcesRequest
	resources []roadmap.Resource
	err       error
}

// emailMsg carries the result of an email request.
type emailMsg struct {
	req session.EmailRequest
	ack string
	err error
}
