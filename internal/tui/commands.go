package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/leg100/roadmap/internal/session"
)

// Service is the remote roadmap service.
type Service interface {
	GenerateSkills(ctx context.Context, topic string) ([]roadmap.Skill, error)
	GenerateResources(ctx context.Context, skill string) ([]roadmap.Resource, error)
	SendRoadmapEmail(ctx context.Context, rm roadmap.Roadmap) (string, error)
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportError(err error, msg string, args ...any) tea.Cmd {
	return CmdHandler(NewErrorMsg(err, msg, args...))
}

func ReportInfo(msg string, args ...any) tea.Cmd {
	return CmdHandler(InfoMsg(fmt.Sprintf(msg, args...)))
}

func Alert(msg string) tea.Cmd {
	return CmdHandler(AlertMsg(msg))
}

func fetchSkills(ctx context.Context, svc Service, req session.SkillsRequest) tea.Cmd {
	return func() tea.Msg {
		skills, err := svc.GenerateSkills(ctx, req.Topic)
		return skillsMsg{req: req, skills: skills, err: err}
	}
}

func fetchResources(ctx context.Context, svc Service, req session.ResourcesRequest) tea.Cmd {
	return func() tea.Msg {
		resources, err := svc.GenerateResources(ctx, req.Skill)
		return resourcesMsg{req: req, resources: resources, err: err}
	}
}

func sendEmail(ctx context.Context, svc Service, req session.EmailRequest) tea.Cmd {
	return func() tea.Msg {
		ack, err := svc.SendRoadmapEmail(ctx, req.Roadmap)
		return emailMsg{req: req, ack: ack, err: err}
	}
}
