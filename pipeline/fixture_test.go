package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"agent_newsroom/agent"
	"agent_newsroom/audit"
	"agent_newsroom/generator"
	"agent_newsroom/store"
)

const (
	revisionRequestLine = "Improve the following article"
	imageRequestLine    = "Write an image generation prompt"
)

// funcLLM answers through fn and records every prompt it receives.
type funcLLM struct {
	mu      sync.Mutex
	fn      func(p generator.Prompt) (string, error)
	prompts []generator.Prompt
}

func (f *funcLLM) Complete(_ context.Context, p generator.Prompt) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	f.mu.Unlock()
	return f.fn(p)
}

func (f *funcLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *funcLLM) recorded() []generator.Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generator.Prompt(nil), f.prompts...)
}

// writerLLM drafts "# Draft\n\n<request>", revises to "# Revised\n\n...", and answers
// image prompt requests with a fixed prompt.
func writerLLM() *funcLLM {
	return &funcLLM{fn: func(p generator.Prompt) (string, error) {
		switch {
		case strings.Contains(p.User, revisionRequestLine):
			return "# Revised\n\nImproved text.", nil
		case strings.Contains(p.User, imageRequestLine):
			return "watercolour of " + p.User, nil
		default:
			return "# Draft\n\n" + p.User, nil
		}
	}}
}

func verdictLLM(verdict string) *funcLLM {
	return &funcLLM{fn: func(generator.Prompt) (string, error) { return verdict, nil }}
}

type fakeImages struct {
	data []byte
	err  error
}

func (f fakeImages) Generate(context.Context, string) ([]byte, error) { return f.data, f.err }

type fixture struct {
	writer *funcLLM
	censor *funcLLM
	store  *store.Store
	reg    *agent.Registry
	events *eventLog
}

type fixtureOpts struct {
	verdict   string
	images    generator.ImageClient
	skipKinds []agent.Kind
}

func newFixture(t *testing.T, o fixtureOpts) *fixture {
	t.Helper()
	st, err := store.New(afero.NewMemMapFs(), "pages", "images")
	require.NoError(t, err)
	if o.images == nil {
		o.images = fakeImages{data: []byte("png")}
	}
	if o.verdict == "" {
		o.verdict = "Solid piece. Final decision: approve."
	}
	f := &fixture{writer: writerLLM(), censor: verdictLLM(o.verdict), store: st, events: &eventLog{}}

	w, err := agent.NewWriter(f.writer)
	require.NoError(t, err)
	c, err := agent.NewCensor(f.censor, "")
	require.NoError(t, err)
	a, err := agent.NewArtist(o.images, st)
	require.NoError(t, err)
	l, err := agent.NewLayout(st)
	require.NoError(t, err)

	skip := map[agent.Kind]bool{}
	for _, k := range o.skipKinds {
		skip[k] = true
	}
	f.reg, err = agent.NewRegistry()
	require.NoError(t, err)
	for _, capability := range []agent.Capability{w, c, a, l} {
		if !skip[capability.Kind()] {
			require.NoError(t, f.reg.Register(capability))
		}
	}
	return f
}

func (f *fixture) orchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o, err := New(f.reg, WithLogger(log.New(io.Discard)), WithSink(f.events))
	require.NoError(t, err)
	return o
}

type eventLog struct {
	mu     sync.Mutex
	events []audit.Event
}

func (e *eventLog) Publish(ev audit.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *eventLog) kinds(kind audit.EventKind) []audit.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []audit.Event
	for _, ev := range e.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func actionLabels(l audit.Log) []string {
	var out []string
	for _, a := range l.Actions {
		out = append(out, a.Action)
	}
	return out
}
