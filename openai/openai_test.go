package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zoobzio/textops"
)

func testMessages() []textops.Message {
	return []textops.Message{
		{Role: textops.RoleSystem, Content: "You are a summarizer."},
		{Role: textops.RoleUser, Content: "Some document."},
	}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := New(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return provider
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, textops.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	provider, err := New(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if provider.model != "gpt-4-turbo-preview" {
		t.Errorf("model = %q", provider.model)
	}
	if provider.baseURL != "https://api.openai.com/v1" {
		t.Errorf("baseURL = %q", provider.baseURL)
	}
	if provider.Name() != "openai" {
		t.Errorf("Name() = %q", provider.Name())
	}
}

func TestCallSuccess(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"summary\": \"ok\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
		}`))
	})

	resp, err := provider.Call(context.Background(), testMessages(), 0.2)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if resp.Content != `{"summary": "ok"}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage.Total != 19 {
		t.Errorf("Usage.Total = %d, want 19", resp.Usage.Total)
	}
}

// The outgoing request carries auth, JSON mode, and both messages.
func TestCallRequestShape(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionRequest

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "{}"}}], "usage": {}}`))
	})

	if _, err := provider.Call(context.Background(), testMessages(), 0.3); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_object" {
		t.Error("request should force JSON mode")
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
	if gotBody.Temperature != 0.3 {
		t.Errorf("temperature = %f", gotBody.Temperature)
	}
}

func TestCallServerErrorIsTransient(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "upstream exploded", "type": "server_error"}}`, http.StatusInternalServerError)
	})

	_, err := provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTransient(err) {
		t.Fatalf("expected transient error for 500, got %v", err)
	}
}

func TestCallRateLimitIsTransient(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "slow down", "type": "rate_limit_error"}}`, http.StatusTooManyRequests)
	})

	_, err := provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTransient(err) {
		t.Fatalf("expected transient error for 429, got %v", err)
	}
}

func TestCallUnauthorizedIsTerminal(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`, http.StatusUnauthorized)
	})

	_, err := provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTerminal(err) {
		t.Fatalf("expected terminal error for 401, got %v", err)
	}
	if !errors.Is(err, textops.ErrMissingCredential) {
		t.Errorf("credential rejection should wrap ErrMissingCredential, got %v", err)
	}
}

func TestCallBadRequestIsTerminal(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "model not found", "type": "invalid_request_error"}}`, http.StatusBadRequest)
	})

	_, err := provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTerminal(err) {
		t.Fatalf("expected terminal error for 400, got %v", err)
	}
}

func TestCallEmptyCompletionIsTransient(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "usage": {}}`))
	})

	_, err := provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTransient(err) {
		t.Fatalf("expected transient error for empty completion, got %v", err)
	}
}

func TestCallNetworkErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider, err := New(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = provider.Call(context.Background(), testMessages(), 0.2)
	if !textops.IsTransient(err) {
		t.Fatalf("expected transient error for refused connection, got %v", err)
	}
}
