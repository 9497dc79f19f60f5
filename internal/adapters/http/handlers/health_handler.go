package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Pinger checks a backing store
type Pinger func() error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mode  string
	store string
	ping  Pinger
}

// NewHealthHandler creates a new health handler.
// A nil ping reports the store as healthy.
func NewHealthHandler(mode, store string, ping Pinger) *HealthHandler {
	return &HealthHandler{mode: mode, store: store, ping: ping}
}

// Root handles root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "PetFind API v1 is running",
		"mode":    h.mode,
	})
}

// HealthCheck reports API and store health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storeStatus := "healthy"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			storeStatus = "unhealthy"
		}
	}

	code, overall := fiber.StatusOK, "ok"
	if storeStatus != "healthy" {
		code, overall = fiber.StatusServiceUnavailable, "degraded"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"api":   "healthy",
			h.store: storeStatus,
		},
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "PetFind API v1",
		"version": "1.0.0",
	})
}
