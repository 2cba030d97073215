package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agent_newsroom/agent"
	"agent_newsroom/generator"
)

// ErrRunFailed is returned by Coordinator when the pipeline ends in StateFailed.
var ErrRunFailed = errors.New("article run failed")

// Coordinator exposes the orchestrator as a capability: the pending user turn is the
// topic and the reply is the JSON-encoded Result.
type Coordinator struct {
	orch    *Orchestrator
	history *agent.History
}

func NewCoordinator(orch *Orchestrator) *Coordinator {
	return &Coordinator{orch: orch, history: agent.NewHistory(generator.CoordinatorInstruction)}
}

func (c *Coordinator) Kind() agent.Kind { return agent.KindOrchestrate }
func (c *Coordinator) Name() string     { return CoordinatorName }

func (c *Coordinator) CanHandle(request string) bool {
	lower := strings.ToLower(request)
	for _, kw := range []string{"produce", "publish", "illustrated", "end-to-end"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *Coordinator) HandleRequest(ctx context.Context, topic string) (string, error) {
	c.AddUserMessage(topic)
	return c.GetResponse(ctx)
}

func (c *Coordinator) AddUserMessage(content string) { c.history.AddUser(content) }

func (c *Coordinator) GetResponse(ctx context.Context) (string, error) {
	topic, ok := c.history.Pending()
	if !ok {
		return "", agent.ErrNothingToProcess
	}
	res := c.orch.Run(ctx, topic)
	out, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	c.history.AddAssistant(string(out))
	if res.Failed() {
		return string(out), fmt.Errorf("%w: %s", ErrRunFailed, res.Error)
	}
	return string(out), nil
}

func (c *Coordinator) ClearHistory() { c.history.Reset() }

func (c *Coordinator) History() []generator.Message { return c.history.Messages() }

func (c *Coordinator) Clone() agent.Capability { return NewCoordinator(c.orch) }
