package services

import (
	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/utils"
)

// ChatService 聊天请求处理管线
// 每次请求独立执行：抓取网站上下文 → 组装提示词 → 调用补全接口 → 提取结构化输出
type ChatService struct {
	cfg     *config.Config
	cache   *ContentCache
	prompts *PromptService
	llm     *LLMClient
	site    *SiteFetcher
}

// NewChatService 创建聊天服务
func NewChatService(cfg *config.Config, cache *ContentCache, prompts *PromptService) *ChatService {
	return &ChatService{
		cfg:     cfg,
		cache:   cache,
		prompts: prompts,
		llm:     NewLLMClient(cfg),
		site:    NewSiteFetcher(cfg),
	}
}

// HandleMessage 处理一轮聊天
// 网站上下文抓取和结构化输出提取都是尽力而为，只有补全接口失败才返回错误
func (s *ChatService) HandleMessage(req models.ChatRequest) (models.ChatResponse, error) {
	targetLanguage := utils.ResolveLanguage(req.Language)
	logger.Info("收到聊天消息", "message_preview", utils.Preview(req.Message, 100), "target_language", targetLanguage)

	// 步骤1：抓取目标网站上下文（可选，失败不中断）
	siteContent := ""
	if req.WebsiteURL != "" {
		siteContent = s.site.FetchSiteContext(req.WebsiteURL)
	}

	// 步骤2：组装系统提示词，注入当前缓存快照
	systemPrompt := s.prompts.Compose(targetLanguage, s.cache.Pages(), s.cache.Posts())

	// 步骤3：构建消息列表，历史消息过滤掉缺少role或content的条目
	messages := make([]models.ChatMessage, 0, len(req.ChatHistory)+2)
	messages = append(messages, models.ChatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range req.ChatHistory {
		if turn.Role == "" || turn.Content == "" {
			continue
		}
		messages = append(messages, turn)
	}
	messages = append(messages, models.ChatMessage{
		Role:    "user",
		Content: req.Message + "\n\n" + siteContent,
	})

	// 步骤4：调用补全接口
	reply, err := s.llm.CreateChatCompletion(messages)
	if err != nil {
		return models.ChatResponse{}, err
	}

	// 步骤5：提取结构化输出
	links, isContactForm := ExtractStructuredOutput(reply)

	return models.ChatResponse{
		Reply:         reply,
		Links:         links,
		IsContactForm: isContactForm,
	}, nil
}
