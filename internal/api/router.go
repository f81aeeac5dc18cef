package api

import (
	"github.com/gin-gonic/gin"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/api/middleware"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/service"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	PDFDir      string
	AdminAPIKey string
}

// SetupRouter sets up the Gin router.
func SetupRouter(
	chatService *service.ChatService,
	statsService *service.StatsService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Static chat and admin pages
	SetupStaticRoutes(r)

	h := NewHandler(chatService, statsService, cfg.PDFDir)
	r.POST("/chat", h.Chat)
	r.GET("/data/:filename", h.PDFFile)

	// Admin API (API key optional; open when unset, as the admin page is)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(cfg.AdminAPIKey))
	adminGroup.GET("/stats", h.Stats)

	return r
}
