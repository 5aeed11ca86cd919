package logging

// Interface is the set of logging methods used throughout roadmap.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var Discard Interface = &noop{}

type noop struct{}

func (noop) Debug(msg string, args ...any) {}

func (noop) Info(msg string, args ...any) {}

func (noop) Warn(msg string, args ...any) {}

func (noop) Error(msg string, args ...any) {}
