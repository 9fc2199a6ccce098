package api

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/services"
)

// AuthMiddleware checks if the user is authenticated
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authService.IsAuthRequired() {
			return c.Next()
		}

		// Check session cookie
		sessionID := c.Cookies("session")
		if sessionID != "" && authService.ValidateSession(c.Context(), sessionID) {
			return c.Next()
		}

		// Check Authorization header (for API clients)
		authHeader := c.Get("Authorization")
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			if authService.ValidateJWT(token) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Unauthorized"})
	}
}

// RateLimitMiddleware applies a per-IP token bucket to the API.
func RateLimitMiddleware(limit, burst int) fiber.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *fiber.Ctx) error {
		mu.Lock()
		limiter, ok := limiters[c.IP()]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(limit), burst)
			limiters[c.IP()] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{Error: "Too many requests"})
		}
		return c.Next()
	}
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(models.ErrorResponse{Error: message})
	}
	return c.Status(code).SendString(message)
}
