package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moodlog/internal/models/request_models"
	"moodlog/internal/services"
	"moodlog/pkg/middleware"
	"moodlog/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

// History godoc
// @Summary Chat history
// @Description Most recent messages, oldest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max messages (default 50, max 200)"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ChatMessageResponse}
// @Router /chat/messages [get]
func (cc *ChatController) History(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	msgs, err := cc.chatService.History(c.Request.Context(), accountID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, msgs, "Fetched chat history successfully")
}

// Send godoc
// @Summary Talk to the assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SendMessageRequest true "Message"
// @Success 200 {object} utils.APIResponse{data=response_models.ChatMessageResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /chat/messages [post]
func (cc *ChatController) Send(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := cc.chatService.Send(c.Request.Context(), accountID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Message sent successfully")
}

// Clear godoc
// @Summary Delete chat history
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /chat/messages [delete]
func (cc *ChatController) Clear(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	deleted, err := cc.chatService.Clear(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deleted": deleted}, "Chat history cleared")
}
