package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ai-quota-dash-go/internal/api"
	"github.com/ai-quota-dash-go/internal/config"
	"github.com/ai-quota-dash-go/internal/credentials"
	"github.com/ai-quota-dash-go/internal/providers"
	"github.com/ai-quota-dash-go/internal/services"
	"github.com/ai-quota-dash-go/internal/settings"
	"github.com/ai-quota-dash-go/internal/storage"
	"github.com/ai-quota-dash-go/internal/utils"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := utils.NewLogger(cfg.Env)
	defer log.Sync()

	log.Infow("Configuration loaded",
		"port", cfg.Port,
		"cache_ttl", cfg.CacheTTL,
		"http_timeout", cfg.HTTPTimeout,
		"redis", cfg.RedisURL != "",
	)

	// Initialize storage (redis when configured, in-memory otherwise)
	var store storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalw("Failed to connect to redis", "error", err)
		}
		store = redisStore
		log.Info("Connected to redis")
	} else {
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	// Credential resolution chain: env, then optional dotenv file, then
	// optional settings JSON from an embedding integration
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalw("Failed to resolve home directory", "error", err)
	}
	resolver := credentials.NewResolver(home, settings.Default(cfg.SettingsEnvFile, cfg.SettingsFile))

	// Initialize services
	client := providers.NewClient(resolver, cfg.HTTPTimeout, log)
	usageService := services.NewUsageService(client, store, cfg.CacheTTL, log)
	authService := services.NewAuthService(store, cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		AppName:      "AI Quota Dashboard",
	})

	// Middlewares
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Setup routes
	handlers := api.NewHandlers(usageService, authService)
	api.SetupRoutes(app, handlers, cfg)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorw("Server shutdown error", "error", err)
		}
	}()

	// Start server
	log.Infow("Starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalw("Failed to start server", "error", err)
	}
}
