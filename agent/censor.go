package agent

import (
	"context"
	"errors"

	"agent_newsroom/generator"
)

// Censor reviews articles and classifies its own reply into a Verdict.
type Censor struct {
	base
	llm    generator.LLMClient
	marker string
}

// NewCensor uses generator.DefaultRevisionMarker when marker is empty.
func NewCensor(llm generator.LLMClient, marker string) (*Censor, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if marker == "" {
		marker = generator.DefaultRevisionMarker
	}
	return newCensor(llm, marker), nil
}

func newCensor(llm generator.LLMClient, marker string) *Censor {
	return &Censor{
		base: newBase(KindReview, "Censor", generator.CensorInstruction,
			"check", "review", "verify", "control", "censor", "approval", "audit"),
		llm:    llm,
		marker: marker,
	}
}

func (c *Censor) Marker() string { return c.marker }

func (c *Censor) HandleRequest(ctx context.Context, request string) (string, error) {
	c.AddUserMessage(request)
	return c.GetResponse(ctx)
}

func (c *Censor) GetResponse(ctx context.Context) (string, error) {
	return c.respond(ctx, chatWith(c.llm, c.history))
}

func (c *Censor) Review(ctx context.Context, article string) (generator.Verdict, error) {
	raw, err := c.HandleRequest(ctx, generator.BuildReviewRequest(article, c.marker))
	if err != nil {
		return generator.Verdict{}, err
	}
	return generator.ParseVerdict(raw, c.marker), nil
}

func (c *Censor) Clone() Capability { return newCensor(c.llm, c.marker) }
