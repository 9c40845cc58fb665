package api

import (
	"net/http"
	"strconv"

	"ctrip-server/internal/middleware"
	"ctrip-server/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatbotService *services.ChatbotService
}

func NewChatHandler(chatbotService *services.ChatbotService) *ChatHandler {
	return &ChatHandler{chatbotService: chatbotService}
}

// Ask answers a security question
func (h *ChatHandler) Ask(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	role, _ := middleware.CallerRole(c)

	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.chatbotService.Answer(userID, role, req.Query)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}

// History returns the caller's recent exchanges
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.chatbotService.History(userID, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
