package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nineball/backend/internal/api/handlers"
	"github.com/nineball/backend/internal/config"
	"github.com/nineball/backend/internal/middleware"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		session := v1.Group("/session")
		{
			session.POST("", handlers.CreateSession(cfg))
			session.GET("/:id", handlers.GetSessionFrame(cfg))
			session.GET("/:id/ws", handlers.HandleSessionWebSocket(cfg))
		}

		scores := v1.Group("/scores")
		{
			scores.GET("/top", handlers.TopScores())
			scores.GET("/recent", handlers.RecentSessions())
		}
	}
}
