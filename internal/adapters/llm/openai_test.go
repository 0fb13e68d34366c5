package llm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/llm"
	"github.com/neweraservicez/startup-os/internal/domain"
)

func TestOpenAIClientGenerate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"{\"a\":1}"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := llm.NewOpenAIClient(server.URL+"/", "sk-test", "gpt-4o-mini")
	text, err := client.Generate(context.Background(), domain.Completion{
		System:      "sys",
		Prompt:      "hello",
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.InDelta(t, 0.7, got["temperature"], 0.0001)
	assert.EqualValues(t, 1500, got["max_tokens"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "hello", msgs[1].(map[string]any)["content"])
}

func TestOpenAIClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"requests"}}`)
	}))
	defer server.Close()

	client := llm.NewOpenAIClient(server.URL, "", "gpt-4o-mini")
	_, err := client.Generate(context.Background(), domain.Completion{Prompt: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestMockLLMReturnsJSONWhenAsked(t *testing.T) {
	text, err := llm.NewMockLLM().Generate(context.Background(), domain.Completion{
		System: "Always respond with valid JSON only",
		Prompt: "Generate startup identity content for Acme:\nmore",
	})
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	assert.Equal(t, "Generate startup identity content for Acme:", v["prompt"])
}
