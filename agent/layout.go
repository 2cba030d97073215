package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"agent_newsroom/generator"
	"agent_newsroom/render"
)

// PageSaver persists rendered pages.
type PageSaver interface {
	SavePage(html []byte) (string, error)
}

// Layout renders page bundles. Its requests are JSON-encoded generator.PageBundle values.
type Layout struct {
	base
	saver PageSaver
}

func NewLayout(saver PageSaver) (*Layout, error) {
	if saver == nil {
		return nil, errors.New("page saver is required")
	}
	return newLayout(saver), nil
}

func newLayout(saver PageSaver) *Layout {
	return &Layout{
		base:  newBase(KindRender, "Layout", generator.LayoutInstruction, "layout", "html", "page"),
		saver: saver,
	}
}

func (l *Layout) HandleRequest(ctx context.Context, request string) (string, error) {
	l.AddUserMessage(request)
	return l.GetResponse(ctx)
}

func (l *Layout) GetResponse(ctx context.Context) (string, error) {
	return l.respond(ctx, l.renderRequest)
}

func (l *Layout) Render(ctx context.Context, bundle generator.PageBundle) (string, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("encode page bundle: %w", err)
	}
	return l.HandleRequest(ctx, string(payload))
}

func (l *Layout) renderRequest(_ context.Context, request string) (string, error) {
	var bundle generator.PageBundle
	if err := json.Unmarshal([]byte(request), &bundle); err != nil {
		return "", fmt.Errorf("decode page bundle: %w", err)
	}
	html, err := render.Page(bundle)
	if err != nil {
		return "", err
	}
	return l.saver.SavePage(html)
}

func (l *Layout) Clone() Capability { return newLayout(l.saver) }
