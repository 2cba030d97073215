package agent

import (
	"context"
	"errors"

	"agent_newsroom/generator"
)

// Assistant is the general-purpose fallback for requests no specialist claims.
type Assistant struct {
	base
	llm generator.LLMClient
}

func NewAssistant(llm generator.LLMClient) (*Assistant, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return newAssistant(llm), nil
}

func newAssistant(llm generator.LLMClient) *Assistant {
	return &Assistant{base: newBase(KindGeneral, "Assistant", generator.AssistantInstruction), llm: llm}
}

func (a *Assistant) CanHandle(string) bool { return true }

func (a *Assistant) HandleRequest(ctx context.Context, request string) (string, error) {
	a.AddUserMessage(request)
	return a.GetResponse(ctx)
}

func (a *Assistant) GetResponse(ctx context.Context) (string, error) {
	return a.respond(ctx, chatWith(a.llm, a.history))
}

func (a *Assistant) Clone() Capability { return newAssistant(a.llm) }
