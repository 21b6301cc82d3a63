package api

import (
	"github.com/gin-gonic/gin"
	"github.com/zunxo7/DentalCare-AI/internal/api/handler"
	"github.com/zunxo7/DentalCare-AI/internal/api/middleware"
	"github.com/zunxo7/DentalCare-AI/internal/config"
	"github.com/zunxo7/DentalCare-AI/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	pipeline *service.Pipeline,
	history handler.HistoryStore,
	cfg *config.ServerConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	chatHandler := handler.NewChatHandler(pipeline, history)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Chat
		v1.POST("/chat", chatHandler.Chat)

		// Conversation history
		v1.GET("/conversations/:id/messages", chatHandler.History)
	}

	return r
}
