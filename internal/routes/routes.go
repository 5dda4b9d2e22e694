package routes

import (
	"net/http"

	"chainwork_backend/internal/handlers"
	"chainwork_backend/internal/middleware"
	"chainwork_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every handler under /api/v1. Auth endpoints are the
// only public routes; everything else sits behind the bearer middleware.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", healthCheck)

	api := router.Group("/api/v1")
	private := router.Group("/api/v1")
	private.Use(middleware.RequireAuth())

	h.Auth.RegisterRoutes(api, private)
	h.User.RegisterRoutes(private)
	h.Job.RegisterRoutes(private)
	h.Post.RegisterRoutes(private)
	h.Message.RegisterRoutes(private)
	h.Notification.RegisterRoutes(private)
	h.Payment.RegisterRoutes(private)
}

// healthCheck pings the database through the request-scoped handle set by
// the DB middleware.
func healthCheck(c *gin.Context) {
	db, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
