package models

// ContentRecord CMS内容记录（站点页面或博客文章）
// 字段与HubSpot CMS v3接口返回的属性一一对应，序列化后直接注入提示词
type ContentRecord struct {
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Language    string `json:"language,omitempty"`
	Title       string `json:"htmlTitle,omitempty"`
	PublishDate string `json:"publishDate,omitempty"` // 仅博客文章携带
}
