package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/utils"
)

// jsonOutputPattern 匹配回复中第一个<JSON_OUTPUT>...</JSON_OUTPUT>标记块，允许跨行
var jsonOutputPattern = regexp.MustCompile(`(?s)<JSON_OUTPUT>(.*?)</JSON_OUTPUT>`)

// ExtractStructuredOutput 从模型回复文本中提取结构化输出
// 返回推荐链接列表和"需要联系方式"标志
// 未找到标记块或JSON不合法时退化为空列表和false，只记录日志，不产生错误
func ExtractStructuredOutput(reply string) ([]models.Link, bool) {
	links := []models.Link{}
	detailsRequired := false

	match := jsonOutputPattern.FindStringSubmatch(reply)
	if match == nil {
		return links, detailsRequired
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &data); err != nil {
		logger.Warn("解析JSON_OUTPUT失败", "error", err, "block_preview", utils.Preview(match[1], 200))
		return links, detailsRequired
	}

	detailsRequired = parseBoolLike(data["detailsRequired"])

	// 标准形态：顶层links数组
	links = parseLinks(data["links"])

	// 兼容分类形态：categories[].links，展平后合并
	if len(links) == 0 {
		if categories, ok := data["categories"].([]interface{}); ok {
			for _, item := range categories {
				category, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				links = append(links, parseLinks(category["links"])...)
			}
		}
	}

	logger.Info("结构化输出提取完成", "link_count", len(links), "details_required", detailsRequired)
	return links, detailsRequired
}

// parseLinks 将任意JSON值解析为链接列表，忽略格式不对的元素
func parseLinks(value interface{}) []models.Link {
	links := []models.Link{}
	items, ok := value.([]interface{})
	if !ok {
		return links
	}

	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := obj["title"].(string)
		linkURL, _ := obj["url"].(string)
		description, _ := obj["description"].(string)
		links = append(links, models.Link{
			Title:       title,
			URL:         linkURL,
			Description: description,
		})
	}
	return links
}

// parseBoolLike 宽容解析布尔值，模型偶尔会返回字符串形式的"true"
func parseBoolLike(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}
