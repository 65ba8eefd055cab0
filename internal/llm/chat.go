package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"
	groqBaseURL   = "https://api.groq.com/openai/v1/chat/completions"
)

// Chat implements Client against any OpenAI-compatible chat completions
// endpoint. OpenAI and Groq differ only in base URL, so both constructors
// share this type.
type Chat struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenAI returns a Client for the OpenAI API.
func NewOpenAI(apiKey string) *Chat {
	return &Chat{name: "openai", baseURL: openAIBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

// NewGroq returns a Client for Groq's OpenAI-compatible API.
func NewGroq(apiKey string) *Chat {
	return &Chat{name: "groq", baseURL: groqBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends system and user messages and returns the assistant reply.
func (c *Chat) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not set", c.name)
	}
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", c.name, resp.Status)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	return out.Choices[0].Message.Content, nil
}
