package pipeline

import (
	"errors"
	"fmt"
)

// State is a step of the article state machine.
type State string

const (
	StateStarted              State = "started"
	StateDraftRequested       State = "draft_requested"
	StateReviewed             State = "reviewed"
	StateRevisionRequested    State = "revision_requested"
	StateRevised              State = "revised"
	StateImagePromptRequested State = "image_prompt_requested"
	StateIllustrated          State = "illustrated"
	StateRendered             State = "rendered"
	StateCompleted            State = "completed"
	StateFailed               State = "failed"
)

var ErrInvalidTransition = errors.New("invalid state transition")

var allowedTransitions = map[State]map[State]struct{}{
	StateStarted: {
		StateDraftRequested: {},
		StateFailed:         {},
	},
	StateDraftRequested: {
		StateReviewed: {},
		StateFailed:   {},
	},
	StateReviewed: {
		StateRevisionRequested:    {},
		StateImagePromptRequested: {},
		StateFailed:               {},
	},
	StateRevisionRequested: {
		StateRevised: {},
		StateFailed:  {},
	},
	StateRevised: {
		StateImagePromptRequested: {},
		StateFailed:               {},
	},
	StateImagePromptRequested: {
		StateIllustrated: {},
		StateFailed:      {},
	},
	StateIllustrated: {
		StateRendered: {},
		StateFailed:   {},
	},
	StateRendered: {
		StateCompleted: {},
		StateFailed:    {},
	},
	StateCompleted: {},
	StateFailed:    {},
}

func ValidateTransition(from, to State) error {
	next, ok := allowedTransitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, from)
	}
	if _, ok := allowedTransitions[to]; !ok {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, to)
	}
	if _, ok := next[to]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
