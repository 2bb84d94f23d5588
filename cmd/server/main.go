package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/cmd/middleware"
	"github.com/Jophkins/lastshoot/internal/api"
	"github.com/Jophkins/lastshoot/internal/api/handlers"
	"github.com/Jophkins/lastshoot/internal/configuration"
	"github.com/Jophkins/lastshoot/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := configuration.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := services.InitializePostgres(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}

	if err := services.InitializeMinio(cfg.Storage); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// Events are best-effort; the server runs without a broker
	if _, _, err := services.ConnectNATS(cfg.NATSURL); err != nil {
		log.Printf("Warning: failed to connect to NATS: %v", err)
	}

	middleware.InitAuth(cfg.Auth.JWTSecret)
	handlers.Configure(cfg.Auth, cfg.Storage.PublicBaseURL, logger)

	setupGracefulShutdown()

	r := gin.Default()

	api.RegisterRoutes(r, logger)

	log.Printf("Server starting on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		services.CloseNATS()
		os.Exit(0)
	}()
}
