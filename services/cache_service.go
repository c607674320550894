package services

import (
	"sync"

	"ai_chat_backend/logger"
	"ai_chat_backend/models"
)

// ContentSource 内容来源接口，便于测试时注入假数据
type ContentSource interface {
	FetchPages() ([]models.ContentRecord, error)
	FetchPosts() ([]models.ContentRecord, error)
}

// ContentCache 进程级内容缓存，保存站点页面和博客文章两个集合
// 写入仅由定时刷新任务触发，读取方总是看到完整替换后的快照
type ContentCache struct {
	source ContentSource

	mu    sync.RWMutex
	pages []models.ContentRecord
	posts []models.ContentRecord
}

// NewContentCache 创建内容缓存
func NewContentCache(source ContentSource) *ContentCache {
	return &ContentCache{
		source: source,
		pages:  []models.ContentRecord{},
		posts:  []models.ContentRecord{},
	}
}

// Refresh 从内容来源整体替换两个集合
// 任一集合拉取失败时保留该集合的旧值，错误只记录日志，不向调用方传播
func (c *ContentCache) Refresh() {
	pages, err := c.source.FetchPages()
	if err != nil {
		logger.Error("刷新页面缓存失败，保留旧数据", "error", err)
	} else {
		if pages == nil {
			pages = []models.ContentRecord{}
		}
		c.mu.Lock()
		c.pages = pages
		c.mu.Unlock()
		logger.Info("页面缓存已刷新", "count", len(pages))
	}

	posts, err := c.source.FetchPosts()
	if err != nil {
		logger.Error("刷新博客缓存失败，保留旧数据", "error", err)
	} else {
		if posts == nil {
			posts = []models.ContentRecord{}
		}
		c.mu.Lock()
		c.posts = posts
		c.mu.Unlock()
		logger.Info("博客缓存已刷新", "count", len(posts))
	}
}

// Pages 返回页面集合的当前快照
func (c *ContentCache) Pages() []models.ContentRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pages
}

// Posts 返回博客集合的当前快照
func (c *ContentCache) Posts() []models.ContentRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posts
}
