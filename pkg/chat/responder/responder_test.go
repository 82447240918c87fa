package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/pkg/llm"
)

type scriptedProvider struct {
	reply    string
	err      error
	received []llm.Message
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.received = history
	return p.reply, p.err
}

func TestRespondPrependsSystemMessage(t *testing.T) {
	provider := &scriptedProvider{reply: "hello there"}
	r := NewResponder(provider, "You are a friendly helper.")

	history := []llm.Message{{Role: "user", Content: "hi"}}
	reply, err := r.Respond(context.Background(), history, "CONTEXT:\nsome facts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello there" {
		t.Fatalf("got reply %q", reply)
	}

	if len(provider.received) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(provider.received))
	}
	sys := provider.received[0]
	if sys.Role != "system" {
		t.Fatalf("first message must be the system prompt, got role %q", sys.Role)
	}
	if !strings.Contains(sys.Content, "You are a friendly helper.") || !strings.Contains(sys.Content, "some facts") {
		t.Fatalf("system message must carry persona and context, got %q", sys.Content)
	}
}

func TestRespondNoProvider(t *testing.T) {
	r := NewResponder(nil, "prompt")

	if r.Configured() {
		t.Fatal("nil provider must report unconfigured")
	}
	if r.ProviderName() != "none" {
		t.Fatalf("got provider name %q", r.ProviderName())
	}

	_, err := r.Respond(context.Background(), nil, "")
	if !apperror.IsUpstreamProvider(err) {
		t.Fatalf("expected upstream provider error, got %v", err)
	}
}

func TestRespondWrapsProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	r := NewResponder(&scriptedProvider{err: cause}, "prompt")

	_, err := r.Respond(context.Background(), nil, "")
	if !apperror.IsUpstreamProvider(err) {
		t.Fatalf("expected upstream provider error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("original cause must stay reachable via errors.Is")
	}
}
