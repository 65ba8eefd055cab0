package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultOllamaURL is where a stock local Ollama install listens.
const DefaultOllamaURL = "http://localhost:11434"

// defaultOllamaModel is used when the caller passes an empty model name. Any
// instruction-following model the server has pulled works; generation quality
// scales with the model.
const defaultOllamaModel = "llama3.2"

// Ollama implements Client against a local Ollama server. It speaks the
// /api/chat endpoint with streaming disabled, so Complete returns a single
// reply the same way the hosted providers do.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a client for the Ollama server at baseURL; empty uses
// DefaultOllamaURL.
func NewOllama(baseURL string) *Ollama {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		base = DefaultOllamaURL
	}
	return &Ollama{baseURL: base, client: http.DefaultClient}
}

type ollamaRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaResponse struct {
	Message message `json:"message"`
}

// Complete sends system and user messages and returns the assistant reply.
func (c *Ollama) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if model == "" {
		model = defaultOllamaModel
	}
	body, err := json.Marshal(ollamaRequest{
		Model:  model,
		Stream: false,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: %s", resp.Status)
	}
	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return out.Message.Content, nil
}
