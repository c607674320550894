package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/swaggo/swag" // 导入 swag

	"ai_chat_backend/config"
	_ "ai_chat_backend/docs" // 导入 swagger 文档
	"ai_chat_backend/handlers"
	"ai_chat_backend/logger"
	"ai_chat_backend/scheduler"
	"ai_chat_backend/services"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// 构建服务依赖
	hubspot := services.NewHubSpotClient(cfg)
	cache := services.NewContentCache(hubspot)
	prompts := services.NewPromptService(cfg)
	defer prompts.Close()
	chat := services.NewChatService(cfg, cache, prompts)
	leads := services.NewLeadService(cfg)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// 聊天组件嵌入在第三方站点中，需要放开跨域
	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	handlers.RegisterRoutes(r, chat, prompts, leads)

	// 启动定时缓存刷新
	scheduler.Start(cfg, cache)

	logger.Info("服务器启动", "address", cfg.Server.Addr)
	logger.Info("Swagger文档可访问", "url", "http://localhost"+cfg.Server.Addr+"/swagger/index.html")
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
