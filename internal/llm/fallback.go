package llm

import (
	"context"
	"fmt"
)

// Fallback chains clients: Complete asks each in turn and returns the first
// successful reply. It backs a hosted provider with a local Ollama so
// generation keeps working when the hosted one is down or unpaid.
type Fallback struct {
	chain []Client
}

// NewFallback returns a client that tries each of clients in order.
func NewFallback(clients ...Client) *Fallback {
	return &Fallback{chain: clients}
}

// Complete returns the first successful reply in the chain, or the last error
// when every client fails. A cancelled context stops the chain instead of
// cascading the cancellation error down it.
func (f *Fallback) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	var lastErr error
	for _, c := range f.chain {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		reply, err := c.Complete(ctx, model, systemPrompt, userMessage)
		if err == nil {
			return reply, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("llm: no clients configured")
	}
	return "", lastErr
}
