package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brandoverts/brandoverts-api/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db *persistence.Mongo
}

// NewHealthHandler constructs handler.
func NewHealthHandler(db *persistence.Mongo) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. Readiness requires a reachable database.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db == nil || h.db.Client == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	if err := h.db.Client.Ping(c.Context(), nil); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
