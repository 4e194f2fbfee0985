package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newMockOpenAIServer(t *testing.T, dialogue string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		messages, ok := req["messages"].([]interface{})
		if !ok || len(messages) != 2 {
			t.Errorf("expected 2 chat messages, got %v", req["messages"])
		}

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": dialogue,
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]interface{}{
				"prompt_tokens":     50,
				"completion_tokens": 80,
				"total_tokens":      130,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestOpenAIProvider_GenerateDialogue(t *testing.T) {
	dialogue := "Doctor: Do you take your medication daily?\nPatient: Yes, fifteen milligrams before breakfast."
	server := newMockOpenAIServer(t, dialogue)
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	resp, err := provider.GenerateDialogue(context.Background(), GenerateRequest{
		Topic: "medication adherence",
		Turns: 2,
	})
	if err != nil {
		t.Fatalf("GenerateDialogue failed: %v", err)
	}

	if resp.Conversation.Title != "medication adherence" {
		t.Errorf("expected topic as title, got %q", resp.Conversation.Title)
	}
	if len(resp.Conversation.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(resp.Conversation.Turns))
	}
	if resp.Conversation.Turns[0].Speaker != "Doctor" {
		t.Errorf("expected speaker Doctor, got %q", resp.Conversation.Turns[0].Speaker)
	}
	if resp.TokensUsed != 130 {
		t.Errorf("expected 130 tokens used, got %d", resp.TokensUsed)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", resp.Model)
	}
}

func TestOpenAIProvider_UnparseableResponse(t *testing.T) {
	server := newMockOpenAIServer(t, "sorry, I cannot help with that")
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := provider.GenerateDialogue(context.Background(), GenerateRequest{Topic: "x"}); err == nil {
		t.Error("expected error for a response with no dialogue turns")
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limit exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := provider.GenerateDialogue(context.Background(), GenerateRequest{Topic: "x"}); err == nil {
		t.Error("expected error from a failing API")
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "openai", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected provider openai, got %q", provider.Name())
	}

	provider, err = NewProvider(Config{Provider: ""})
	if err != nil || provider != nil {
		t.Errorf("disabled provider must return nil/nil, got %v/%v", provider, err)
	}

	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
