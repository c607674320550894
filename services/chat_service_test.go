package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_chat_backend/config"
	"ai_chat_backend/models"
)

// newTestChatService 组装一个指向假补全接口的聊天服务
func newTestChatService(t *testing.T, llmURL string) (*ChatService, *fakeContentSource) {
	t.Helper()

	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.OpenAI.BaseURL = llmURL
	cfg.OpenAI.MaxTokens = 600
	cfg.OpenAI.TimeoutSec = 5
	cfg.Site.SitemapTimeoutSec = 2
	cfg.Site.MaxScrapeLinks = 10
	cfg.Prompt.FilePath = filepath.Join(t.TempDir(), "chatgptPrompt.txt")

	source := &fakeContentSource{
		pages: []models.ContentRecord{{Name: "Kursliste", Slug: "course-listing", Language: "de"}},
		posts: []models.ContentRecord{{Name: "News", Slug: "blog/news", Language: "de"}},
	}
	cache := NewContentCache(source)
	cache.Refresh()

	prompts := NewPromptService(cfg)
	t.Cleanup(prompts.Close)

	return NewChatService(cfg, cache, prompts), source
}

func TestHandleMessage(t *testing.T) {
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Gerne! <JSON_OUTPUT>{\"detailsRequired\":false,\"links\":[{\"title\":\"Kursliste\",\"url\":\"https://example.com/kurse\",\"description\":\"Alle Kurse\"}]}</JSON_OUTPUT>"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	svc, _ := newTestChatService(t, server.URL)

	resp, err := svc.HandleMessage(models.ChatRequest{
		Message:  "Welche Kurse gibt es?",
		Language: "de-DE",
		ChatHistory: []models.ChatMessage{
			{Role: "user", Content: "Hallo"},
			{Role: "assistant", Content: "Hallo! Wie kann ich helfen?"},
			{Role: "", Content: "kaputt"},
			{Role: "user", Content: ""},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "Gerne!")
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "https://example.com/kurse", resp.Links[0].URL)
	assert.False(t, resp.IsContactForm)

	// 消息列表 = 系统提示词 + 过滤后的2条历史 + 当前用户消息
	require.Len(t, gotReq.Messages, 4)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[3].Role)
	assert.True(t, strings.HasPrefix(gotReq.Messages[3].Content, "Welche Kurse gibt es?\n\n"))

	// 系统提示词中语言占位符全部解析为两位代码，缓存内容已注入
	systemPrompt := gotReq.Messages[0].Content
	assert.NotContains(t, systemPrompt, "{targetLanguage}")
	assert.Contains(t, systemPrompt, "de")
	assert.Contains(t, systemPrompt, `"slug":"course-listing"`)
	assert.Contains(t, systemPrompt, `"slug":"blog/news"`)
}

func TestHandleMessageSiteFetchFailureDoesNotAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Antwort ohne Kontext"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	svc, _ := newTestChatService(t, server.URL)

	// 目标网站不可达，聊天仍然正常返回
	resp, err := svc.HandleMessage(models.ChatRequest{
		Message:    "hello",
		WebsiteURL: "http://127.0.0.1:1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Antwort ohne Kontext", resp.Reply)
	assert.Empty(t, resp.Links)
	assert.False(t, resp.IsContactForm)
}

func TestHandleMessageLLMFailurePropagates(t *testing.T) {
	svc, _ := newTestChatService(t, "http://127.0.0.1:1")

	_, err := svc.HandleMessage(models.ChatRequest{Message: "hello"})

	require.Error(t, err)
}
