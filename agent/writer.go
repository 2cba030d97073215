package agent

import (
	"context"
	"errors"

	"agent_newsroom/generator"
)

// Writer drafts and rewrites articles over its own conversation.
type Writer struct {
	base
	llm generator.LLMClient
}

func NewWriter(llm generator.LLMClient) (*Writer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return newWriter(llm), nil
}

func newWriter(llm generator.LLMClient) *Writer {
	return &Writer{
		base: newBase(KindDraft, "Writer", generator.WriterInstruction,
			"article", "write", "text", "story", "description", "content"),
		llm: llm,
	}
}

func (w *Writer) HandleRequest(ctx context.Context, request string) (string, error) {
	w.AddUserMessage(request)
	return w.GetResponse(ctx)
}

func (w *Writer) GetResponse(ctx context.Context) (string, error) {
	return w.respond(ctx, chatWith(w.llm, w.history))
}

// Draft answers request and validates the reply as a Markdown article.
func (w *Writer) Draft(ctx context.Context, request string) (generator.Draft, error) {
	raw, err := w.HandleRequest(ctx, request)
	if err != nil {
		return generator.Draft{}, err
	}
	return generator.PostProcess(raw)
}

func (w *Writer) Clone() Capability { return newWriter(w.llm) }

// chatWith answers the pending turn by sending the whole history to llm.
func chatWith(llm generator.LLMClient, h *History) func(context.Context, string) (string, error) {
	return func(ctx context.Context, _ string) (string, error) {
		return llm.Complete(ctx, generator.PromptFromHistory(h.Messages()))
	}
}
