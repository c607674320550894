package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/utils"
)

// 定义OpenAI chat completions接口的请求和响应结构
type chatCompletionRequest struct {
	Model     string               `json:"model"`
	Messages  []models.ChatMessage `json:"messages"`
	MaxTokens int                  `json:"max_tokens"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// noResponseFallback 模型未返回可用文本时的固定占位回复
const noResponseFallback = "No response"

// LLMClient OpenAI兼容的对话补全客户端
type LLMClient struct {
	cfg    *config.Config
	client *http.Client
}

// NewLLMClient 创建对话补全客户端
func NewLLMClient(cfg *config.Config) *LLMClient {
	timeout := time.Duration(cfg.OpenAI.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second // 默认超时
	}
	return &LLMClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// CreateChatCompletion 调用对话补全接口，返回首个choice的文本
// 模型未返回可用文本时返回固定占位回复；传输层错误原样返回给调用方
func (c *LLMClient) CreateChatCompletion(messages []models.ChatMessage) (string, error) {
	logger.Info("开始调用对话补全接口", "model", c.cfg.OpenAI.Model, "message_count", len(messages))

	reqBody := chatCompletionRequest{
		Model:     c.cfg.OpenAI.Model,
		Messages:  messages,
		MaxTokens: c.cfg.OpenAI.MaxTokens,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		logger.Error("序列化请求体失败", "error", err)
		return "", err
	}

	logger.Info("对话补全请求详情",
		"url", c.cfg.OpenAI.BaseURL+"/v1/chat/completions",
		"model", c.cfg.OpenAI.Model,
		"request_size", len(reqJSON))

	// 创建HTTP请求
	req, err := http.NewRequest("POST", c.cfg.OpenAI.BaseURL+"/v1/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		logger.Error("创建HTTP请求失败", "error", err)
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+expandEnvRef(c.cfg.OpenAI.APIKey))

	// 发送请求
	startTime := time.Now()
	resp, err := c.client.Do(req)
	requestDuration := time.Since(startTime)

	logger.Info("对话补全请求耗时", "duration_ms", requestDuration.Milliseconds())

	if err != nil {
		logger.Error("发送请求失败", "error", err, "duration_ms", requestDuration.Milliseconds())
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取响应失败", "error", err)
		return "", err
	}

	logger.Info("对话补全响应状态", "status_code", resp.StatusCode, "response_size", len(body))

	if resp.StatusCode != http.StatusOK {
		logger.Error("API请求失败", "status", resp.StatusCode, "response", utils.Preview(string(body), 500))
		return "", fmt.Errorf("API请求失败: %d - %s", resp.StatusCode, utils.Preview(string(body), 500))
	}

	var ccResp chatCompletionResponse
	if err := json.Unmarshal(body, &ccResp); err != nil {
		logger.Error("解析响应失败", "error", err, "response_body_preview", utils.Preview(string(body), 200))
		return "", err
	}

	// 提取首个choice的文本，无可用文本时使用固定占位回复
	if len(ccResp.Choices) == 0 {
		logger.Warn("API响应中没有choices，使用占位回复")
		return noResponseFallback, nil
	}

	reply := strings.TrimSpace(ccResp.Choices[0].Message.Content)
	if reply == "" {
		logger.Warn("API响应内容为空，使用占位回复")
		return noResponseFallback, nil
	}

	logger.Info("成功获取对话补全响应",
		"tokens_prompt", ccResp.Usage.PromptTokens,
		"tokens_completion", ccResp.Usage.CompletionTokens,
		"tokens_total", ccResp.Usage.TotalTokens,
		"finish_reason", ccResp.Choices[0].FinishReason)
	logger.Info("对话补全内容预览", "content_preview", utils.Preview(reply, 200))

	return reply, nil
}
