package main

import (
	"fmt"
	"log"
	"time"

	"taskhub/configs"
	v1 "taskhub/internal/api/v1"
	"taskhub/internal/config"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
	"taskhub/internal/ws"
	"taskhub/pkg/database"
	"taskhub/pkg/filestore"
	"taskhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.MaxUploadBytes = cfg.MaxUploadBytes

	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()
	logger.SystemLogger.Info("Database Connected")

	repository.CreateTableIfNotExists(config.DB)

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	store, err := filestore.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}
	config.Files = store

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20, // headroom so oversized uploads reach the handler's 400
	})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Locally stored pictures are served straight from the upload dir.
	app.Static("/uploads", cfg.UploadDir)

	v1.RegisterRoutes(app)

	// Task event stream
	hub := ws.NewHub()
	go hub.Run()
	config.Events = hub
	v1.RegisterEventRoutes(app, hub)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
