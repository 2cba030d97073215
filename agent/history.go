package agent

import (
	"sync"

	"agent_newsroom/generator"
)

// History is a conversation owned by one capability. The first entry is always the
// capability's system instruction; the rest are user and assistant turns in order.
type History struct {
	mu     sync.Mutex
	system string
	turns  []generator.Message
}

func NewHistory(system string) *History {
	return &History{system: system}
}

func (h *History) AddUser(content string) {
	h.add(generator.RoleUser, content)
}

func (h *History) AddAssistant(content string) {
	h.add(generator.RoleAssistant, content)
}

func (h *History) add(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, generator.Message{Role: role, Content: content})
}

// Messages returns a copy including the system entry.
func (h *History) Messages() []generator.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]generator.Message, 0, len(h.turns)+1)
	out = append(out, generator.Message{Role: generator.RoleSystem, Content: h.system})
	return append(out, h.turns...)
}

// Pending reports the content of the last turn if it is a user turn.
func (h *History) Pending() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.turns); n > 0 && h.turns[n-1].Role == generator.RoleUser {
		return h.turns[n-1].Content, true
	}
	return "", false
}

// Len counts entries including the system entry.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns) + 1
}

// Reset drops every turn, leaving only the system entry.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
