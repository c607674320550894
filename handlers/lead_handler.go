package handlers

import (
	"encoding/json"
	"net/http"

	"ai_chat_backend/logger"
	"ai_chat_backend/models"
	"ai_chat_backend/services"
	"ai_chat_backend/utils"
)

// LeadHandler godoc
// @Summary 提交访客留资
// @Description 将聊天组件收集的姓名和邮箱转发到HubSpot表单接口
// @Tags 留资
// @Accept json
// @Produce json
// @Param request body models.LeadRequest true "留资信息"
// @Success 200 {object} models.LeadResponse "成功"
// @Failure 400 {object} models.LeadResponse "缺少email参数"
// @Failure 500 {object} models.LeadResponse "服务器错误"
// @Router /api/lead [post]
func LeadHandler(w http.ResponseWriter, r *http.Request, leads *services.LeadService) {
	var req models.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.WriteJSON(w, http.StatusBadRequest, models.LeadResponse{
			Success: false,
			Message: "Request body must include 'email'",
		})
		return
	}

	if err := leads.Submit(req.Name, req.Email); err != nil {
		logger.Error("留资提交失败", "error", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.LeadResponse{
			Success: false,
			Message: "Error submitting lead",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.LeadResponse{
		Success: true,
		Message: "Lead submitted successfully",
	})
}
