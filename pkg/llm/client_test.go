package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
)

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4-turbo", req.Model)
		assert.Equal(t, 500, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 0.001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "be helpful", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Equal(t, "what is luna?", req.Messages[1].Content)

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "  Luna is a chatbot.\n"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(config.LLMConfig{Endpoint: server.URL + "/v1", Temperature: 0.7, MaxTokens: 500})
	text, err := client.Complete(context.Background(), domain.CompletionRequest{
		APIKey: "test-key", Model: "gpt-4-turbo", SystemPrompt: "be helpful", Question: "what is luna?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Luna is a chatbot.", text)
}

func TestClient_Errors(t *testing.T) {
	tbl := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
		}},
		{name: "unauthorized", handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}},
		{name: "malformed body", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": [`))
		}},
		{name: "no choices", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": []}`))
		}, wantErr: ErrEmptyCompletion},
		{name: "empty content", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "   "}}]}`))
		}, wantErr: ErrEmptyCompletion},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(config.LLMConfig{Endpoint: server.URL + "/v1", MaxTokens: 10})
			text, err := client.Complete(context.Background(), domain.CompletionRequest{APIKey: "k", Model: "m", Question: "q"})
			require.Error(t, err)
			assert.Empty(t, text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(config.LLMConfig{Endpoint: url + "/v1"})
	_, err := client.Complete(context.Background(), domain.CompletionRequest{APIKey: "k", Model: "m", Question: "q"})
	require.Error(t, err)
}

func TestClient_KeyChange(t *testing.T) {
	var lastAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(config.LLMConfig{Endpoint: server.URL + "/v1"})
	_, err := client.Complete(context.Background(), domain.CompletionRequest{APIKey: "key-1", Model: "m", Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer key-1", lastAuth.Load())
	first := client.clientFor("key-1")

	_, err = client.Complete(context.Background(), domain.CompletionRequest{APIKey: "key-2", Model: "m", Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer key-2", lastAuth.Load())
	assert.NotSame(t, first, client.clientFor("key-2"))
}

func TestClient_RateLimiterCancelled(t *testing.T) {
	client := NewClient(config.LLMConfig{Endpoint: "http://127.0.0.1:1/v1", RateLimit: 0.001, Burst: 1})
	require.True(t, client.limiter.Allow()) // drain the only token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Complete(ctx, domain.CompletionRequest{APIKey: "k", Model: "m", Question: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
