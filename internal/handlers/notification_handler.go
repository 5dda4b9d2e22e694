package handlers

import (
	"net/http"

	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.GET("/notifications", h.List)
	private.GET("/notifications/unread-count", h.UnreadCount)
	private.PUT("/notifications/read-all", h.MarkAllRead)
	private.PUT("/notifications/:notificationId/read", h.MarkRead)
	private.DELETE("/notifications/:notificationId", h.Delete)
}

func (h *NotificationHandler) List(c *gin.Context) {
	var query dto.NotificationQuery
	if !h.bindQuery(c, &query) {
		return
	}

	notifications, pagination, err := h.notificationService.List(middleware.CurrentUserID(c), query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, notifications, pagination)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := h.uuidParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(middleware.CurrentUserID(c), notificationID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(middleware.CurrentUserID(c)); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, ok := h.uuidParam(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(middleware.CurrentUserID(c), notificationID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
