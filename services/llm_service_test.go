package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_chat_backend/config"
	"ai_chat_backend/models"
)

func newLLMTestConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.OpenAI.BaseURL = baseURL
	cfg.OpenAI.MaxTokens = 600
	cfg.OpenAI.TimeoutSec = 5
	return cfg
}

func TestCreateChatCompletion(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"id":"cmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"  Hallo!  "},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":2,"total_tokens":12}}`)
	}))
	defer server.Close()

	client := NewLLMClient(newLLMTestConfig(server.URL))
	reply, err := client.CreateChatCompletion([]models.ChatMessage{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "hallo"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hallo!", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 600, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestCreateChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cmpl-2","choices":[]}`)
	}))
	defer server.Close()

	client := NewLLMClient(newLLMTestConfig(server.URL))
	reply, err := client.CreateChatCompletion([]models.ChatMessage{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "No response", reply)
}

func TestCreateChatCompletionEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cmpl-3","choices":[{"index":0,"message":{"role":"assistant","content":"   "},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewLLMClient(newLLMTestConfig(server.URL))
	reply, err := client.CreateChatCompletion([]models.ChatMessage{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "No response", reply)
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewLLMClient(newLLMTestConfig(server.URL))
	_, err := client.CreateChatCompletion([]models.ChatMessage{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCreateChatCompletionTransportError(t *testing.T) {
	client := NewLLMClient(newLLMTestConfig("http://127.0.0.1:1"))
	_, err := client.CreateChatCompletion([]models.ChatMessage{{Role: "user", Content: "hi"}})

	require.Error(t, err)
}
