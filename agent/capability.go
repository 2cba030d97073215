package agent

import (
	"context"
	"errors"
	"strings"

	"agent_newsroom/generator"
)

// ErrNothingToProcess is returned by GetResponse when the last history turn is not a
// user turn. No external call is made in that case.
var ErrNothingToProcess = errors.New("no user message to process")

// Capability is the contract every worker implements.
type Capability interface {
	Kind() Kind
	Name() string
	// CanHandle is a keyword hint used for free-form routing only. The pipeline addresses
	// its stages by kind and never consults it.
	CanHandle(request string) bool
	// HandleRequest appends request as a user turn and answers it.
	HandleRequest(ctx context.Context, request string) (string, error)
	AddUserMessage(content string)
	GetResponse(ctx context.Context) (string, error)
	ClearHistory()
	History() []generator.Message
	// Clone returns an instance with a fresh history that shares the underlying clients.
	Clone() Capability
}

// Drafter writes and rewrites text.
type Drafter interface {
	Capability
	Draft(ctx context.Context, request string) (generator.Draft, error)
}

// Reviewer judges an article.
type Reviewer interface {
	Capability
	Review(ctx context.Context, article string) (generator.Verdict, error)
}

// Illustrator turns a prompt into a stored image.
type Illustrator interface {
	Capability
	Illustrate(ctx context.Context, prompt string) (generator.Image, error)
}

// Renderer lays out a page and returns its location.
type Renderer interface {
	Capability
	Render(ctx context.Context, bundle generator.PageBundle) (string, error)
}

// base carries what every capability shares: identity, history and routing keywords.
type base struct {
	kind     Kind
	name     string
	history  *History
	keywords []string
}

func newBase(kind Kind, name, instruction string, keywords ...string) base {
	return base{kind: kind, name: name, history: NewHistory(instruction), keywords: keywords}
}

func (b *base) Kind() Kind   { return b.kind }
func (b *base) Name() string { return b.name }

func (b *base) CanHandle(request string) bool {
	return matchKeywords(request, b.keywords)
}

func (b *base) AddUserMessage(content string) { b.history.AddUser(content) }

func (b *base) ClearHistory() { b.history.Reset() }

func (b *base) History() []generator.Message { return b.history.Messages() }

// respond answers the pending user turn with answer and records the reply.
func (b *base) respond(ctx context.Context, answer func(ctx context.Context, request string) (string, error)) (string, error) {
	request, ok := b.history.Pending()
	if !ok {
		return "", ErrNothingToProcess
	}
	reply, err := answer(ctx, request)
	if err != nil {
		return "", err
	}
	b.history.AddAssistant(reply)
	return reply, nil
}

func matchKeywords(request string, keywords []string) bool {
	lower := strings.ToLower(request)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
