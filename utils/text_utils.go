package utils

import (
	"strings"
)

// ResolveLanguage 将BCP47语言标签解析为两位语言代码
// 例如 "de-DE" -> "de"，"zh_CN" -> "zh"，空值默认为 "en"
func ResolveLanguage(language string) string {
	if language == "" {
		language = "en"
	}
	code := strings.FieldsFunc(language, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(code) == 0 {
		return "en"
	}
	return strings.ToLower(code[0])
}

// Preview 截断文本用于日志输出，避免日志过长
func Preview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
