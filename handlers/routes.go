package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "ai_chat_backend/docs" // 导入 swagger 文档
	"ai_chat_backend/services"
)

// RegisterRoutes 注册所有HTTP路由
func RegisterRoutes(r *chi.Mux, chat *services.ChatService, prompts *services.PromptService, leads *services.LeadService) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	// 存活检测
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Backend is running successfully!"))
	})

	r.Post("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		ChatHandler(w, r, chat)
	})

	r.Get("/api/prompt", func(w http.ResponseWriter, r *http.Request) {
		GetPromptHandler(w, r, prompts)
	})

	r.Post("/api/prompt", func(w http.ResponseWriter, r *http.Request) {
		UpdatePromptHandler(w, r, prompts)
	})

	r.Post("/api/lead", func(w http.ResponseWriter, r *http.Request) {
		LeadHandler(w, r, leads)
	})
}
