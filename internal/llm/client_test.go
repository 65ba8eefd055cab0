package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stub struct {
	reply string
	err   error
	calls int
}

func (s *stub) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestFallbackReturnsFirstSuccess(t *testing.T) {
	first := &stub{reply: "from first"}
	second := &stub{reply: "from second"}
	f := NewFallback(first, second)

	reply, err := f.Complete(context.Background(), "m", "sys", "user")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "from first" {
		t.Fatalf("reply = %q, want %q", reply, "from first")
	}
	if second.calls != 0 {
		t.Fatal("second client called despite first succeeding")
	}
}

func TestFallbackTriesNextOnError(t *testing.T) {
	first := &stub{err: errors.New("rate limited")}
	second := &stub{reply: "from second"}
	f := NewFallback(first, second)

	reply, err := f.Complete(context.Background(), "m", "sys", "user")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "from second" {
		t.Fatalf("reply = %q, want %q", reply, "from second")
	}
}

func TestFallbackReturnsLastError(t *testing.T) {
	last := errors.New("also down")
	f := NewFallback(&stub{err: errors.New("down")}, &stub{err: last})

	if _, err := f.Complete(context.Background(), "m", "sys", "user"); !errors.Is(err, last) {
		t.Fatalf("err = %v, want %v", err, last)
	}
}

func TestFallbackStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	second := &stub{reply: "unreachable"}
	f := NewFallback(&stub{err: errors.New("down")}, second)

	// Already-cancelled context: the chain must not run at all.
	if _, err := f.Complete(ctx, "m", "sys", "user"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if second.calls != 0 {
		t.Fatal("client called with a cancelled context")
	}
}

func TestChatComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "[]"}},
			},
		})
	}))
	defer srv.Close()

	c := &Chat{name: "openai", baseURL: srv.URL, apiKey: "sk-test", client: srv.Client()}
	reply, err := c.Complete(context.Background(), "gpt-4o-mini", "sys", "build a house")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "[]" {
		t.Fatalf("reply = %q, want %q", reply, "[]")
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" || len(gotReq.Messages) != 2 {
		t.Fatalf("request = %+v", gotReq)
	}
}

func TestChatMissingKey(t *testing.T) {
	c := NewOpenAI("")
	if _, err := c.Complete(context.Background(), "m", "sys", "user"); err == nil {
		t.Fatal("Complete succeeded without an API key")
	}
}

func TestChatNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Chat{name: "openai", baseURL: srv.URL, apiKey: "sk-test", client: srv.Client()}
	if _, err := c.Complete(context.Background(), "m", "sys", "user"); err == nil {
		t.Fatal("Complete succeeded on a 429")
	}
}

func TestOllamaComplete(t *testing.T) {
	var gotPath string
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaResponse{
			Message: message{Role: "assistant", Content: "local reply"},
		})
	}))
	defer srv.Close()

	c := NewOllama(srv.URL)
	reply, err := c.Complete(context.Background(), "", "sys", "user")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "local reply" {
		t.Fatalf("reply = %q", reply)
	}
	if gotPath != "/api/chat" {
		t.Fatalf("path = %q, want /api/chat", gotPath)
	}
	if gotReq.Stream {
		t.Fatal("streaming requested")
	}
	if gotReq.Model != defaultOllamaModel {
		t.Fatalf("model = %q, want default %q for empty input", gotReq.Model, defaultOllamaModel)
	}
}
