package agent

import (
	"context"
	"sync"

	"agent_newsroom/generator"
)

type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []generator.Prompt
}

func (s *scriptedLLM) Complete(_ context.Context, p generator.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "ok", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type fakeImages struct {
	data []byte
	err  error
}

func (f fakeImages) Generate(context.Context, string) ([]byte, error) {
	return f.data, f.err
}
