package pubsub

const (
	CreatedEvent EventType = "created"
)

type (
	// EventType identifies the type of event
	EventType string

	// Event is published by a broker to its subscribers.
	Event[T any] struct {
		Type    EventType
		Payload T
	}
)

func NewEvent[T any](t EventType, payload T) Event[T] {
	return Event[T]{Type: t, Payload: payload}
}
