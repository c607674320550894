package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/services"
	"ai_chat_backend/utils"
)

// GetPromptHandler godoc
// @Summary 读取当前提示词模板
// @Description 返回模板文件的原始内容
// @Tags 提示词
// @Produce json
// @Success 200 {object} models.PromptGetResponse "成功"
// @Failure 404 {object} models.PromptErrorResponse "模板文件不存在"
// @Failure 500 {object} models.PromptErrorResponse "服务器错误"
// @Router /api/prompt [get]
func GetPromptHandler(w http.ResponseWriter, r *http.Request, prompts *services.PromptService) {
	content, err := prompts.Read()
	if err != nil {
		if os.IsNotExist(err) {
			utils.WriteJSON(w, http.StatusNotFound, models.PromptErrorResponse{
				Success: false,
				Message: "Prompt file not found",
			})
			return
		}
		logger.Error("读取模板文件失败", "error", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.PromptErrorResponse{
			Success: false,
			Message: "Error reading prompt file",
			Error:   err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.PromptGetResponse{
		Success: true,
		Prompt:  content,
	})
}

// UpdatePromptHandler godoc
// @Summary 覆盖写入提示词模板
// @Description 将请求体中的newPrompt写入模板文件
// @Tags 提示词
// @Accept json
// @Produce json
// @Param request body models.PromptUpdateRequest true "新的模板内容"
// @Success 200 {object} models.PromptUpdateResponse "成功"
// @Failure 400 {object} models.PromptErrorResponse "缺少newPrompt参数"
// @Failure 500 {object} models.PromptErrorResponse "服务器错误"
// @Router /api/prompt [post]
func UpdatePromptHandler(w http.ResponseWriter, r *http.Request, prompts *services.PromptService) {
	var req models.PromptUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPrompt == "" {
		utils.WriteJSON(w, http.StatusBadRequest, models.PromptErrorResponse{
			Success: false,
			Message: "Request body must include 'newPrompt'",
		})
		return
	}

	if err := prompts.Save(req.NewPrompt); err != nil {
		logger.Error("写入模板文件失败", "error", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.PromptErrorResponse{
			Success: false,
			Message: "Error updating prompt file",
			Error:   err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.PromptUpdateResponse{
		Success:   true,
		Message:   "Prompt file updated successfully",
		NewPrompt: req.NewPrompt,
	})
}
