package advisor

import (
	"context"
	"strings"
	"time"
)

// RequestTimeout bounds one completion request to a model backend.
const RequestTimeout = 60 * time.Second

// Provider is a single-shot completion backend. Implementations own their
// transport, authentication and response unwrapping; they return the
// model's reply as free text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// SelectProvider picks the backend family from the shape of the credential.
// Keys that look like Anthropic keys select the Anthropic adapter; anything
// else selects the OpenAI adapter. An empty key yields nil, meaning the
// advisor stage is disabled. Selection happens once at startup.
func SelectProvider(apiKey, model string) Provider {
	if apiKey == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(apiKey), "anthropic") || strings.Contains(apiKey, "sk-ant") {
		return NewAnthropicProvider(apiKey)
	}
	return NewOpenAIProvider(apiKey, model)
}
