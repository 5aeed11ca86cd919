package session

// EmailStatus is the status of sending a roadmap by email.
//
//	idle -> sending -> sent | error
//	sent | error -> sending
//
// Starting a new search returns the status to idle.
type EmailStatus int

const (
	EmailIdle EmailStatus = iota
	EmailSending
	EmailSent
	EmailError
)

func (s EmailStatus) String() string {
	switch s {
	case EmailSending:
		return "sending"
	case EmailSent:
		return "sent"
	case EmailError:
		return "error"
	default:
		return "idle"
	}
}
