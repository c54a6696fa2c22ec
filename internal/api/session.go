package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/service"
)

// SessionHandler serves stateful conversations: start, send, replay, end.
type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type startSessionRequest struct {
	CharacterID string `json:"characterId" binding:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Start handles POST /api/sessions.
func (h *SessionHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "characterId is required"})
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), req.CharacterID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Send handles POST /api/sessions/:id/messages. Out-of-credit sends come
// back 402 and a send while a reply is pending comes back 409, both without
// touching the session.
func (h *SessionHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	session, err := h.sessions.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Messages handles GET /api/sessions/:id/messages.
func (h *SessionHandler) Messages(c *gin.Context) {
	messages, err := h.sessions.Messages(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
