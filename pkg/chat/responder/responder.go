package responder

import (
	"context"

	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/pkg/llm"
)

// Responder is the gateway in front of whichever text-generation backend the
// factory selected. It normalizes every failure (no provider configured,
// transport error, provider-side error, timeout) into an
// UpstreamProviderError so the orchestration layer has a single fallback
// path. One outbound call per invocation, no retries.
type Responder struct {
	provider     llm.Provider
	systemPrompt string
}

func NewResponder(provider llm.Provider, systemPrompt string) *Responder {
	return &Responder{
		provider:     provider,
		systemPrompt: systemPrompt,
	}
}

// Configured reports whether any backend is available.
func (r *Responder) Configured() bool {
	return r.provider != nil
}

// ProviderName returns the active backend name, or "none".
func (r *Responder) ProviderName() string {
	if r.provider == nil {
		return "none"
	}
	return r.provider.Name()
}

// Respond prepends the persona instruction and the assembled context to the
// conversation and dispatches it once.
func (r *Responder) Respond(ctx context.Context, history []llm.Message, contextText string) (string, error) {
	if r.provider == nil {
		return "", apperror.NewUpstreamProvider("no AI provider configured", nil)
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: r.systemPrompt + "\n\n" + contextText,
	})
	messages = append(messages, history...)

	reply, err := r.provider.Chat(ctx, messages)
	if err != nil {
		return "", apperror.NewUpstreamProvider("AI provider call failed", err)
	}
	return reply, nil
}
