package handlers

import (
	"net/http"

	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messageService: messageService}
}

func (h *MessageHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.POST("/messages", h.Send)
	private.GET("/messages/conversations", h.ListConversations)
	private.GET("/messages/conversations/:userId", h.ListConversation)
	private.GET("/messages/unread-count", h.UnreadCount)
	private.DELETE("/messages/:messageId", h.Delete)
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	message, err := h.messageService.Send(middleware.CurrentUserID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) ListConversations(c *gin.Context) {
	conversations, err := h.messageService.ListConversations(middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// ListConversation returns the thread with another user and marks their
// messages read as a side effect.
func (h *MessageHandler) ListConversation(c *gin.Context) {
	otherID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	page, limit := pageParams(c)
	messages, pagination, err := h.messageService.ListConversation(middleware.CurrentUserID(c), otherID, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, messages, pagination)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, ok := h.uuidParam(c, "messageId")
	if !ok {
		return
	}

	if err := h.messageService.Delete(middleware.CurrentUserID(c), messageID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
