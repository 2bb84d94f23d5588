package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/cmd/middleware"
	"github.com/Jophkins/lastshoot/internal/api/handlers"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, PATCH, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("completed HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func RegisterRoutes(r *gin.Engine, logger *zap.Logger) {
	// Enable CORS for preflight requests
	r.Use(corsMiddleware())
	r.Use(requestLogger(logger))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public surface
		api.POST("/auth/login", handlers.Login)
		api.GET("/pictures", handlers.ListPictures) // public gallery feed

		// Admin surface, every state-mutating entry point sits behind auth
		admin := api.Group("", middleware.RequireAuth())
		{
			admin.POST("/uploads/sign", handlers.SignUploads)  // presign direct-to-storage writes
			admin.POST("/photos/commit", handlers.CommitPhoto) // create the durable record
			admin.GET("/photos", handlers.ListPhotos)
			admin.PATCH("/photos/:id", handlers.UpdatePhoto)
			admin.POST("/photos/:id/delete", handlers.DeletePhoto) // soft delete
			admin.POST("/photos/:id/restore", handlers.RestorePhoto)
		}
	}
}
