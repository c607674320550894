package models

// PromptUpdateRequest 更新提示词模板的请求体
type PromptUpdateRequest struct {
	NewPrompt string `json:"newPrompt"`
}

// PromptGetResponse 读取提示词模板的响应体
type PromptGetResponse struct {
	Success bool   `json:"success"`
	Prompt  string `json:"prompt"`
}

// PromptUpdateResponse 更新提示词模板的响应体
type PromptUpdateResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	NewPrompt string `json:"newPrompt"`
}

// PromptErrorResponse 提示词接口错误响应体
type PromptErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
