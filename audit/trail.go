// Package audit records what the orchestrator did during one run: the ordered list of
// actions it took and the messages exchanged between capabilities.
package audit

import "sync"

// Action is one logical orchestrator step.
type Action struct {
	Agent   string `json:"agent"`
	Action  string `json:"action"`
	Details string `json:"details"`
}

// Interaction is one message passed between two capabilities.
type Interaction struct {
	From    string `json:"fromAgent"`
	To      string `json:"toAgent"`
	Message string `json:"message"`
}

// Log is a point-in-time copy of a trail.
type Log struct {
	Actions      []Action      `json:"agentActions"`
	Interactions []Interaction `json:"interactions"`
}

// Trail is an append-only, run-scoped record. Every record is forwarded to the
// registered sinks as it is appended.
type Trail struct {
	runID string
	sinks []Sink

	mu           sync.Mutex
	actions      []Action
	interactions []Interaction
}

func NewTrail(runID string, sinks ...Sink) *Trail {
	var kept []Sink
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Trail{runID: runID, sinks: kept}
}

func (t *Trail) RunID() string { return t.runID }

// RecordAction appends an action and forwards it.
func (t *Trail) RecordAction(agent, action, details string) {
	a := Action{Agent: agent, Action: action, Details: details}
	t.mu.Lock()
	t.actions = append(t.actions, a)
	t.mu.Unlock()
	t.publish(Event{Kind: EventAction, RunID: t.runID, Action: &a})
}

// RecordInteraction appends an interaction and forwards it.
func (t *Trail) RecordInteraction(from, to, message string) {
	in := Interaction{From: from, To: to, Message: message}
	t.mu.Lock()
	t.interactions = append(t.interactions, in)
	t.mu.Unlock()
	t.publish(Event{Kind: EventInteraction, RunID: t.runID, Interaction: &in})
}

// Emit forwards a lifecycle event (start, complete, error). Lifecycle events are not stored.
func (t *Trail) Emit(kind EventKind, payload any) {
	t.publish(Event{Kind: kind, RunID: t.runID, Payload: payload})
}

func (t *Trail) Actions() []Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Action, len(t.actions))
	copy(out, t.actions)
	return out
}

func (t *Trail) Interactions() []Interaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Interaction, len(t.interactions))
	copy(out, t.interactions)
	return out
}

// Snapshot copies both sequences.
func (t *Trail) Snapshot() Log {
	return Log{Actions: t.Actions(), Interactions: t.Interactions()}
}

func (t *Trail) publish(ev Event) {
	for _, s := range t.sinks {
		s.Publish(ev)
	}
}
