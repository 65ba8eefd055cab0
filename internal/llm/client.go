// Package llm provides chat-completion clients for the remote generation
// collaborator. The adapter layer owns prompts and parsing; this package is
// transport only.
package llm

import "context"

// Client sends a prompt to an LLM and returns the reply text.
// Model is provider-specific (e.g. "gpt-4o-mini", "llama-3.3-70b-versatile").
type Client interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}
