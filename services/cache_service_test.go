package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_chat_backend/models"
)

// fakeContentSource 测试用的内容来源，可按集合注入错误
type fakeContentSource struct {
	pages    []models.ContentRecord
	posts    []models.ContentRecord
	pagesErr error
	postsErr error
}

func (f *fakeContentSource) FetchPages() ([]models.ContentRecord, error) {
	return f.pages, f.pagesErr
}

func (f *fakeContentSource) FetchPosts() ([]models.ContentRecord, error) {
	return f.posts, f.postsErr
}

func TestContentCacheStartsEmpty(t *testing.T) {
	cache := NewContentCache(&fakeContentSource{})

	assert.NotNil(t, cache.Pages())
	assert.NotNil(t, cache.Posts())
	assert.Empty(t, cache.Pages())
	assert.Empty(t, cache.Posts())
}

func TestContentCacheRefreshReplacesWholesale(t *testing.T) {
	source := &fakeContentSource{
		pages: []models.ContentRecord{{Name: "p1"}, {Name: "p2"}},
		posts: []models.ContentRecord{{Name: "b1"}},
	}
	cache := NewContentCache(source)

	cache.Refresh()
	require.Len(t, cache.Pages(), 2)
	require.Len(t, cache.Posts(), 1)

	// 第二次刷新整体替换，不做合并
	source.pages = []models.ContentRecord{{Name: "p3"}}
	source.posts = []models.ContentRecord{}
	cache.Refresh()

	require.Len(t, cache.Pages(), 1)
	assert.Equal(t, "p3", cache.Pages()[0].Name)
	assert.Empty(t, cache.Posts())
}

func TestContentCacheRefreshFailureKeepsStaleCollection(t *testing.T) {
	source := &fakeContentSource{
		pages: []models.ContentRecord{{Name: "p1"}},
		posts: []models.ContentRecord{{Name: "b1"}},
	}
	cache := NewContentCache(source)
	cache.Refresh()

	// 博客拉取失败时保留旧值，页面照常更新
	source.pages = []models.ContentRecord{{Name: "p2"}}
	source.postsErr = errors.New("hubspot unavailable")
	cache.Refresh()

	require.Len(t, cache.Pages(), 1)
	assert.Equal(t, "p2", cache.Pages()[0].Name)
	require.Len(t, cache.Posts(), 1)
	assert.Equal(t, "b1", cache.Posts()[0].Name)
}

func TestContentCacheNilResultBecomesEmpty(t *testing.T) {
	cache := NewContentCache(&fakeContentSource{pages: nil, posts: nil})

	cache.Refresh()

	assert.NotNil(t, cache.Pages())
	assert.NotNil(t, cache.Posts())
}
