package audit

// EventKind labels a record on the live progress stream.
type EventKind string

const (
	EventStart       EventKind = "start"
	EventAction      EventKind = "action"
	EventInteraction EventKind = "interaction"
	EventComplete    EventKind = "complete"
	EventError       EventKind = "error"
	EventProgress    EventKind = "progress"
)

// Event is what sinks receive.
type Event struct {
	Kind        EventKind    `json:"type"`
	RunID       string       `json:"run_id"`
	Action      *Action      `json:"action,omitempty"`
	Interaction *Interaction `json:"interaction,omitempty"`
	Payload     any          `json:"payload,omitempty"`
}

// Sink observes trail records. Publish must not block for long; it runs on the
// pipeline's goroutine.
type Sink interface {
	Publish(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

func (f SinkFunc) Publish(ev Event) { f(ev) }
