package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/utils"
)

// hubSpotListResponse HubSpot CMS内容列表接口的响应结构
type hubSpotListResponse struct {
	Total   int                    `json:"total"`
	Results []models.ContentRecord `json:"results"`
}

// HubSpotClient HubSpot CMS内容读取客户端
type HubSpotClient struct {
	cfg    *config.Config
	client *http.Client
}

// NewHubSpotClient 创建HubSpot客户端
func NewHubSpotClient(cfg *config.Config) *HubSpotClient {
	// 使用配置的超时时间
	timeout := time.Duration(cfg.HubSpot.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second // 默认超时
	}
	return &HubSpotClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchPages 拉取已发布的站点页面列表
func (c *HubSpotClient) FetchPages() ([]models.ContentRecord, error) {
	logger.Info("开始从HubSpot拉取站点页面")
	path := "/cms/v3/pages/site-pages?state__in=PUBLISHED_OR_SCHEDULED&property=name,slug,language,htmlTitle"
	return c.fetchRecords(path)
}

// FetchPosts 拉取博客文章列表
func (c *HubSpotClient) FetchPosts() ([]models.ContentRecord, error) {
	logger.Info("开始从HubSpot拉取博客文章")
	path := fmt.Sprintf("/cms/v3/blogs/posts?property=name,slug,language,htmlTitle,publishDate&limit=%d", c.cfg.HubSpot.PostLimit)
	return c.fetchRecords(path)
}

// fetchRecords 调用HubSpot内容列表接口并解析results数组
func (c *HubSpotClient) fetchRecords(path string) ([]models.ContentRecord, error) {
	reqURL := c.cfg.HubSpot.BaseURL + path

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		logger.Error("创建HubSpot请求失败", "error", err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+expandEnvRef(c.cfg.HubSpot.AccessToken))

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("HubSpot请求失败", "url", reqURL, "error", err)
		return nil, fmt.Errorf("HubSpot服务连接失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取HubSpot响应失败", "error", err)
		return nil, err
	}

	logger.Info("HubSpot响应状态", "status_code", resp.StatusCode, "response_size", len(body))

	if resp.StatusCode != http.StatusOK {
		logger.Error("HubSpot返回错误状态码", "status_code", resp.StatusCode, "response", utils.Preview(string(body), 500))
		return nil, fmt.Errorf("HubSpot接口错误 (HTTP %d): %s", resp.StatusCode, utils.Preview(string(body), 200))
	}

	var listResp hubSpotListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		logger.Error("解析HubSpot响应失败", "error", err, "response_preview", utils.Preview(string(body), 200))
		return nil, err
	}

	logger.Info("HubSpot内容拉取完成", "count", len(listResp.Results))
	return listResp.Results, nil
}

// expandEnvRef 如果配置值是环境变量引用（形如${VAR_NAME}），则从环境变量中取值
func expandEnvRef(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envName := value[2 : len(value)-1]
		return os.Getenv(envName)
	}
	return value
}
