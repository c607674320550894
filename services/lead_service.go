package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/utils"
)

// leadSubmissionPayload HubSpot表单提交接口的请求体
type leadSubmissionPayload struct {
	Fields []leadField `json:"fields"`
}

// leadField 表单中的一个字段
type leadField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LeadService 访客留资转发服务
// 将聊天组件收集的姓名和邮箱提交到HubSpot表单接口
type LeadService struct {
	cfg    *config.Config
	client *http.Client
}

// NewLeadService 创建留资服务
func NewLeadService(cfg *config.Config) *LeadService {
	timeout := time.Duration(cfg.Lead.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second // 默认超时
	}
	return &LeadService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Submit 提交一条留资记录
func (s *LeadService) Submit(name, email string) error {
	payload := leadSubmissionPayload{
		Fields: []leadField{
			{Name: "firstname", Value: name},
			{Name: "email", Value: email},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		logger.Error("序列化留资数据失败", "error", err)
		return err
	}

	submitURL := fmt.Sprintf("%s/submissions/v3/integration/submit/%s/%s",
		s.cfg.Lead.FormsURL, s.cfg.Lead.PortalID, s.cfg.Lead.FormID)

	logger.Info("提交留资记录", "url", submitURL, "email", email)

	req, err := http.NewRequest("POST", submitURL, bytes.NewBuffer(jsonData))
	if err != nil {
		logger.Error("创建留资请求失败", "error", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("留资请求失败", "error", err)
		return fmt.Errorf("表单服务连接失败: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	logger.Info("留资响应状态", "status_code", resp.StatusCode, "response_size", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("表单接口返回错误状态码", "status_code", resp.StatusCode, "response", utils.Preview(string(body), 500))
		return fmt.Errorf("表单接口错误 (HTTP %d): %s", resp.StatusCode, utils.Preview(string(body), 200))
	}

	logger.Info("留资记录提交成功", "email", email)
	return nil
}
