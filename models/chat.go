package models

// ChatMessage 对话中的一条消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 聊天接口请求体
type ChatRequest struct {
	Message     string        `json:"message"`
	Language    string        `json:"language,omitempty"`
	WebsiteURL  string        `json:"websiteUrl,omitempty"`
	ChatHistory []ChatMessage `json:"chatHistory,omitempty"`
}

// Link 模型推荐的链接
type Link struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ChatResponse 聊天接口响应体
// IsContactForm统一为bool类型，未找到结构化输出时默认为false
type ChatResponse struct {
	Reply         string `json:"reply"`
	Links         []Link `json:"links"`
	IsContactForm bool   `json:"isContactForm"`
}

// ErrorResponse 聊天接口错误响应体
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
