package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/models"
)

// 提示词模板中的占位符
const (
	PlaceholderLanguage = "{targetLanguage}"
	PlaceholderPages    = "{pagesJSON}"
	PlaceholderBlogs    = "{blogsJSON}"
)

// defaultPromptTemplate 内置的默认提示词模板
// 模板文件缺失或为空时使用，占位符在每次请求时替换
const defaultPromptTemplate = `ROLE:
You are the official **HKV AI Assistant**. Your goal is to help visitors find the right educational courses and certifications.

INPUTS:
- {targetLanguage}
- pagesJSON = {pagesJSON} (Contains HKV Course Listings and Details)
- blogsJSON = {blogsJSON} (Contains HKV News and Updates)

---

OBJECTIVES:
1. Welcome visitors warmly and reply strictly in {targetLanguage}.
2. Focus exclusively on recommending **Courses** and **Course Details** from the provided HKV data.
3. If a visitor asks about enrollment, specific course requirements, or custom training, ask for their **name** and **email** so the HKV team can assist.
4. When recommending links, include them invisibly in JSON using the defined format.

---

LOGIC:

### COURSE & CONTENT HANDLING
- Prioritize matches found in **pagesJSON** that contain "course", "listing", "detail", or specific educational subjects.
- If the visitor's query does not match an available course:
  - Do NOT guess.
  - Politely state that you couldn't find an exact match and ask for their **name** and **email** so an advisor can reach out.
  - In <JSON_OUTPUT>, set "detailsRequired": true.

### LANGUAGE & LINKING
- Always return pages matching the visitor's language ({targetLanguage}).
- If a course page is not available in that language, fallback to German ("de") or English ("en").
- Maximum 3 course links per response.
- If no blog matches are found, use the fallback: https://145914055.hs-sites-eu1.com/course-listing.

---

OUTPUT FORMAT:
<JSON_OUTPUT>{"detailsRequired":true,"links":[{"title":"string","url":"string","description":"string"}],"categorized":false}</JSON_OUTPUT>

STYLE:
- Professional, educational, and encouraging.
- Always in {targetLanguage}.
- Focus on HKV's tradition and future in education.`

// PromptService 提示词模板服务
// 模板内容缓存在内存中，文件变化时通过fsnotify失效
type PromptService struct {
	path    string
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	cached string
	valid  bool
}

// NewPromptService 创建提示词服务并启动文件监听
func NewPromptService(cfg *config.Config) *PromptService {
	s := &PromptService{path: filepath.Clean(cfg.Prompt.FilePath)}
	s.startWatcher()
	return s
}

// startWatcher 监听模板文件所在目录，文件变化时让内存缓存失效
// 监听失败只记录日志，服务退化为每次从磁盘读取
func (s *PromptService) startWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("创建模板文件监听失败，模板缓存不可用", "error", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("创建模板目录失败", "dir", dir, "error", err)
		watcher.Close()
		return
	}
	if err := watcher.Add(dir); err != nil {
		logger.Warn("监听模板目录失败", "dir", dir, "error", err)
		watcher.Close()
		return
	}

	s.watcher = watcher
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Info("检测到模板文件变化，清除内存缓存", "file", s.path, "op", event.Op.String())
					s.invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("模板文件监听出错", "error", err)
			}
		}
	}()

	logger.Info("模板文件监听已启动", "dir", dir)
}

// invalidate 清除内存中缓存的模板
func (s *PromptService) invalidate() {
	s.mu.Lock()
	s.valid = false
	s.cached = ""
	s.mu.Unlock()
}

// Close 停止文件监听
func (s *PromptService) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

// Template 返回当前生效的模板文本
// 优先使用内存缓存，其次读取模板文件，文件缺失或为空时回退为内置默认模板
func (s *PromptService) Template() string {
	s.mu.RLock()
	if s.valid {
		cached := s.cached
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("读取模板文件失败，使用默认模板", "file", s.path, "error", err)
		} else {
			logger.Warn("模板文件不存在，使用默认模板", "file", s.path)
		}
		return defaultPromptTemplate
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		logger.Warn("模板文件为空，使用默认模板", "file", s.path)
		return defaultPromptTemplate
	}

	s.mu.Lock()
	s.cached = trimmed
	s.valid = true
	s.mu.Unlock()

	logger.Info("模板文件加载成功", "file", s.path, "size", len(trimmed))
	return trimmed
}

// Read 读取模板文件的原始内容，供管理接口使用
func (s *PromptService) Read() (string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Save 覆盖写入模板文件并更新内存缓存
func (s *PromptService) Save(content string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = strings.TrimSpace(content)
	s.valid = s.cached != ""
	s.mu.Unlock()

	logger.Info("模板文件更新成功", "file", s.path, "size", len(content))
	return nil
}

// Compose 将目标语言和缓存的内容集合替换进模板，产出系统提示词
// 语言占位符替换所有出现位置，两个集合占位符只替换第一次出现位置
func (s *PromptService) Compose(targetLanguage string, pages, posts []models.ContentRecord) string {
	prompt := s.Template()
	prompt = strings.ReplaceAll(prompt, PlaceholderLanguage, targetLanguage)
	prompt = strings.Replace(prompt, PlaceholderPages, marshalRecords(pages), 1)
	prompt = strings.Replace(prompt, PlaceholderBlogs, marshalRecords(posts), 1)
	return prompt
}

// marshalRecords 将内容集合序列化为JSON，空集合序列化为[]
func marshalRecords(records []models.ContentRecord) string {
	if records == nil {
		records = []models.ContentRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		logger.Error("序列化内容集合失败", "error", err)
		return "[]"
	}
	return string(data)
}
