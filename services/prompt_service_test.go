package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_chat_backend/config"
	"ai_chat_backend/models"
)

func newTestPromptService(t *testing.T) *PromptService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Prompt.FilePath = filepath.Join(t.TempDir(), "chatgptPrompt.txt")
	s := NewPromptService(cfg)
	t.Cleanup(s.Close)
	return s
}

func TestTemplateFallsBackToDefault(t *testing.T) {
	s := newTestPromptService(t)

	tpl := s.Template()

	assert.Contains(t, tpl, PlaceholderLanguage)
	assert.Contains(t, tpl, PlaceholderPages)
	assert.Contains(t, tpl, PlaceholderBlogs)
}

func TestTemplateEmptyFileFallsBackToDefault(t *testing.T) {
	s := newTestPromptService(t)
	require.NoError(t, os.WriteFile(s.path, []byte("   \n  "), 0644))

	assert.Equal(t, defaultPromptTemplate, s.Template())
}

func TestTemplatePrefersFileContent(t *testing.T) {
	s := newTestPromptService(t)
	custom := "Custom prompt for {targetLanguage} with {pagesJSON} and {blogsJSON}"
	require.NoError(t, s.Save(custom))

	assert.Equal(t, custom, s.Template())
}

func TestSaveReadRoundTrip(t *testing.T) {
	s := newTestPromptService(t)

	_, err := s.Read()
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Save("new prompt"))

	content, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "new prompt", content)
}

func TestComposeReplacesAllPlaceholders(t *testing.T) {
	s := newTestPromptService(t)
	require.NoError(t, s.Save("lang={targetLanguage} again={targetLanguage}\npages={pagesJSON}\nblogs={blogsJSON}"))

	pages := []models.ContentRecord{{Name: "Kursliste", Slug: "course-listing", Language: "de", Title: "Kursliste"}}
	prompt := s.Compose("de", pages, nil)

	assert.NotContains(t, prompt, PlaceholderLanguage)
	assert.NotContains(t, prompt, PlaceholderPages)
	assert.NotContains(t, prompt, PlaceholderBlogs)
	assert.Contains(t, prompt, "lang=de again=de")
	assert.Contains(t, prompt, `"slug":"course-listing"`)
	// 空集合序列化为[]
	assert.Contains(t, prompt, "blogs=[]")
}

func TestComposeDefaultTemplateLeavesNoPlaceholders(t *testing.T) {
	s := newTestPromptService(t)

	prompt := s.Compose("de", nil, nil)

	assert.NotContains(t, prompt, PlaceholderLanguage)
	// 默认模板中两个集合占位符各只出现一次，全部被替换
	assert.NotContains(t, prompt, PlaceholderPages)
	assert.NotContains(t, prompt, PlaceholderBlogs)
}

func TestTemplatePicksUpExternalFileChange(t *testing.T) {
	s := newTestPromptService(t)
	require.NoError(t, s.Save("v1 prompt"))
	require.Equal(t, "v1 prompt", s.Template())

	// 绕过Save直接改写文件，模板缓存应由文件监听失效
	require.NoError(t, os.WriteFile(s.path, []byte("v2 prompt"), 0644))

	assert.Eventually(t, func() bool {
		return s.Template() == "v2 prompt"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSaveUpdatesComposedPrompt(t *testing.T) {
	s := newTestPromptService(t)
	require.NoError(t, s.Save("v1 {targetLanguage}"))
	assert.Equal(t, "v1 en", s.Compose("en", nil, nil))

	require.NoError(t, s.Save("v2 {targetLanguage}"))
	assert.Equal(t, "v2 en", s.Compose("en", nil, nil))
}
