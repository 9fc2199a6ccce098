package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ai-quota-dash-go/internal/config"
)

// SetupRoutes configures all routes
func SetupRoutes(app *fiber.App, handlers *Handlers, cfg *config.Config) {
	// Health check
	app.Get("/health", handlers.Health)

	// Authentication routes (no auth middleware)
	app.Post("/api/login", handlers.Login)
	app.Post("/api/logout", handlers.Logout)

	// API routes group with auth and rate limiting
	api := app.Group("/api",
		RateLimitMiddleware(cfg.RateLimit, cfg.RateLimitBurst),
		AuthMiddleware(handlers.authService),
	)

	api.Get("/usage", handlers.GetUsage)
	api.Get("/usage/:service", handlers.GetServiceUsage)

	// Dashboard static files
	app.Static("/", "./web/static", fiber.Static{
		Browse: false,
		Index:  "index.html",
	})
}
