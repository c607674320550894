package handlers

import (
	"encoding/json"
	"net/http"

	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/services"
	"ai_chat_backend/utils"
)

// ChatHandler godoc
// @Summary 处理一轮聊天消息
// @Description 将访客消息连同缓存的CMS内容和目标网站上下文发送给大模型，返回回复和推荐链接
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "聊天请求"
// @Success 200 {object} models.ChatResponse "成功"
// @Failure 400 {object} models.ErrorResponse "缺少message参数"
// @Failure 500 {object} models.ErrorResponse "服务器错误"
// @Router /api/chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request, chat *services.ChatService) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("解析聊天请求体失败", "error", err)
		utils.WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing message"})
		return
	}

	if req.Message == "" {
		utils.WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing message"})
		return
	}

	resp, err := chat.HandleMessage(req)
	if err != nil {
		logger.Error("聊天请求处理失败", "error", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Something went wrong.",
			Details: err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
