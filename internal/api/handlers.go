package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/services"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	usageService *services.UsageService
	authService  *services.AuthService
}

// NewHandlers creates new handlers
func NewHandlers(usageService *services.UsageService, authService *services.AuthService) *Handlers {
	return &Handlers{
		usageService: usageService,
		authService:  authService,
	}
}

// Health check endpoint
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Login handles authentication
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request"})
	}

	if !h.authService.ValidatePassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Invalid password"})
	}

	sessionID, err := h.authService.CreateSession(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		Expires:  time.Now().Add(h.authService.SessionTTL()),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(models.SuccessResponse{Success: true})
}

// Logout handles logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies("session")
	if sessionID != "" {
		_ = h.authService.DeleteSession(c.Context(), sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(models.SuccessResponse{Success: true})
}

// GetUsage returns the normalized usage records for all providers.
func (h *Handlers) GetUsage(c *fiber.Ctx) error {
	refresh := c.QueryBool("refresh")
	return c.JSON(h.usageService.GetAll(c.Context(), refresh))
}

// GetServiceUsage returns the usage record for one provider.
func (h *Handlers) GetServiceUsage(c *fiber.Ctx) error {
	svc := models.Service(c.Params("service"))
	if !svc.Valid() {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Unknown service: " + string(svc)})
	}

	refresh := c.QueryBool("refresh")
	return c.JSON(h.usageService.GetService(c.Context(), svc, refresh))
}
