// Package pipeline drives one topic through drafting, review, an optional single
// revision, illustration and rendering, recording every step in an audit trail.
package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"agent_newsroom/agent"
	"agent_newsroom/audit"
)

// CoordinatorName is the agent name the orchestrator records its own steps under.
const CoordinatorName = "Coordinator"

// Orchestrator runs the article pipeline. It holds no per-run state: every Run works on
// a clone of the registry and a fresh audit trail, so concurrent runs stay isolated.
type Orchestrator struct {
	registry *agent.Registry
	logger   *log.Logger
	sinks    []audit.Sink
	newID    func() string
}

type Option func(*Orchestrator)

func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithSink forwards the records of every run to s.
func WithSink(s audit.Sink) Option {
	return func(o *Orchestrator) { o.sinks = append(o.sinks, s) }
}

func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

func New(registry *agent.Registry, opts ...Option) (*Orchestrator, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	o := &Orchestrator{registry: registry, newID: uuid.NewString}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return o, nil
}

func (o *Orchestrator) Registry() *agent.Registry { return o.registry }

// Run produces one article for topic. It never returns an error: failures end the run
// in StateFailed and are described by Result.Error and the audit logs. Extra sinks
// receive this run's records only.
func (o *Orchestrator) Run(ctx context.Context, topic string, sinks ...audit.Sink) Result {
	id := o.newID()
	logger := o.logger.With("run", id)

	all := []audit.Sink{logSink(logger)}
	all = append(all, o.sinks...)
	all = append(all, sinks...)

	r := &run{
		id:    id,
		topic: topic,
		reg:   o.registry.Clone(),
		trail: audit.NewTrail(id, all...),
		state: StateStarted,
	}
	logger.Info("run started", "topic", topic)
	res := r.execute(ctx)
	if res.Failed() {
		logger.Error("run failed", "error", res.Error)
	} else {
		logger.Info("run completed", "page", res.PagePath, "revised", res.Revised)
	}
	return res
}

func logSink(logger *log.Logger) audit.Sink {
	return audit.SinkFunc(func(ev audit.Event) {
		switch ev.Kind {
		case audit.EventAction:
			logger.Debug(ev.Action.Action, "agent", ev.Action.Agent, "details", ev.Action.Details)
		case audit.EventInteraction:
			logger.Debug("interaction", "from", ev.Interaction.From, "to", ev.Interaction.To, "message", truncate(ev.Interaction.Message, 120))
		}
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
