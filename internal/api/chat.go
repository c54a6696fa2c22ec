package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
	"character-chat/backend/pkg/logger"
)

// ChatHandler serves the stateless completion proxy. The browser sends the
// whole transcript each call; nothing is stored server-side.
type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages  []chatTurn        `json:"messages"`
	Character *models.Character `json:"character"`
}

// Generate handles POST /api/chat.
func (h *ChatHandler) Generate(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array is required"})
		return
	}

	transcript := make([]models.ChatMessage, 0, len(req.Messages))
	for _, turn := range req.Messages {
		sender := models.SenderCharacter
		if turn.Role == "user" {
			sender = models.SenderUser
		}
		transcript = append(transcript, models.ChatMessage{
			Content:   turn.Content,
			Sender:    sender,
			Timestamp: time.Now(),
		})
	}

	response, err := h.chat.Generate(c.Request.Context(), req.Character, transcript)
	if err != nil {
		logger.FromContext(c).Error("Chat generation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
