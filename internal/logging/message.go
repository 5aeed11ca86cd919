package logging

import "time"

// Message is the event payload for a log message
type Message struct {
	Time       time.Time
	Level      string
	Message    string `json:"msg"`
	Attributes []Attr

	// Serial uniquely identifies the message (within the scope of the logger it
	// was emitted from). The higher the Serial number the newer the message.
	Serial uint
}

type Attr struct {
	Key   string
	Value string
}

// Attr retrieves the value of the attribute with the given key.
func (m Message) Attr(key string) (string, bool) {
	for _, attr := range m.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// BySerialDesc sorts log messages by their serial, newest first.
func BySerialDesc(i, j Message) int {
	if i.Serial < j.Serial {
		return 1
	}
	return -1
}
