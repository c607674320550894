package models

// LeadRequest 访客留资请求体
type LeadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LeadResponse 访客留资响应体
type LeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
