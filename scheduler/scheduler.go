package scheduler

import (
	"sync"
	"time"

	"ai_chat_backend/config"
	"ai_chat_backend/logger"
	"ai_chat_backend/services"
)

// 任务类型
type TaskType int

const (
	TaskCacheRefresh TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg   *config.Config
	cache *services.ContentCache
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

// NewScheduler 创建新的调度器
func NewScheduler(cfg *config.Config, cache *services.ContentCache) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		cache: cache,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start 启动调度器
// 启动时先异步刷新一次缓存，之后按固定间隔周期性刷新
func Start(cfg *config.Config, cache *services.ContentCache) {
	scheduler := NewScheduler(cfg, cache)

	// 初始化任务
	scheduler.initTasks()

	// 启动时立即刷新一次缓存，走运行标记，避免与首个周期刷新重叠
	scheduler.dispatchTask(TaskCacheRefresh, time.Now())

	// 启动主循环
	go scheduler.run()

	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	logger.Info("调度器已启动", "check_interval_sec", checkInterval)
}

// refreshInterval 计算缓存刷新间隔
func (s *Scheduler) refreshInterval() time.Duration {
	if s.cfg.Debug.Enabled {
		// Debug模式：按配置的秒数间隔刷新
		freqSeconds := s.cfg.Debug.CacheRefreshFreqSec
		if freqSeconds <= 0 {
			freqSeconds = 300
		}
		return time.Duration(freqSeconds) * time.Second
	}

	hours := s.cfg.Cache.RefreshHours
	if hours <= 0 {
		hours = 6 // 默认每6小时刷新
	}
	return time.Duration(hours) * time.Hour
}

// initTasks 初始化任务
func (s *Scheduler) initTasks() {
	now := time.Now()
	interval := s.refreshInterval()

	s.tasks[TaskCacheRefresh] = &TaskStatus{
		LastRun:     now,
		NextRun:     now.Add(interval),
		IsRunning:   false,
		Description: "CMS内容缓存刷新",
	}

	if s.cfg.Debug.Enabled {
		logger.Info("Debug模式已启用", "refresh_interval", interval.String())
	}
	logger.Info("定时任务初始化完成", "task_count", len(s.tasks), "refresh_interval", interval.String())
}

// dispatchTask 标记任务为运行中并异步执行
func (s *Scheduler) dispatchTask(taskType TaskType, now time.Time) {
	s.mutex.Lock()
	s.tasks[taskType].IsRunning = true
	s.mutex.Unlock()

	go s.runTask(taskType, now)
}

// run 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

// checkTasks 检查任务
func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		// 如果任务正在运行，跳过，避免刷新任务相互重叠
		if status.IsRunning {
			continue
		}

		// 如果到达或超过下次运行时间，执行任务
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

// runTask 运行任务
func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		switch taskType {
		case TaskCacheRefresh:
			status.NextRun = now.Add(s.refreshInterval())
		}

		logger.Info("任务执行完成", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskCacheRefresh:
		logger.Info("开始执行缓存刷新任务")
		s.cache.Refresh()
	}
}
