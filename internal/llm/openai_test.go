package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openaiAgainst(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  "gpt-4o-mini",
	}
}

func openaiCompletion(content, finishReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			}},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}
}

func openaiAPIError(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "boom"},
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	p := openaiAgainst(t, openaiCompletion(`{"title":"Slices","content":"A slice is a view over an array."}`, "stop"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a course author.",
		Messages:  []Message{{Role: RoleUser, Content: "Write a theory block."}},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.JSONEq(t, `{"title":"Slices","content":"A slice is a view over an array."}`, string(resp.Content))
}

func TestOpenAITruncation(t *testing.T) {
	p := openaiAgainst(t, openaiCompletion(`{"partial":`, "length"))

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "max_tokens", resp.StopReason)
}

func TestOpenAIErrorMapping(t *testing.T) {
	req := Request{Messages: []Message{{Role: RoleUser, Content: "test"}}, MaxTokens: 100}

	t.Run("rate limit", func(t *testing.T) {
		p := openaiAgainst(t, openaiAPIError(http.StatusTooManyRequests))
		_, err := p.Generate(context.Background(), req)

		var limited *ErrRateLimit
		require.ErrorAs(t, err, &limited)
	})

	t.Run("server error", func(t *testing.T) {
		p := openaiAgainst(t, openaiAPIError(http.StatusInternalServerError))
		_, err := p.Generate(context.Background(), req)

		var unavail *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavail)
	})
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err, "key is mandatory")

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://example.com/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
