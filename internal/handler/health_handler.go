package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eduai-labs/eduai-api/internal/utils"
)

// HealthHandler exposes the liveness probe.
type HealthHandler struct {
	appName string
}

// NewHealthHandler creates a health handler instance.
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

// Register binds the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{
		"status":  "ok",
		"service": h.appName,
	})
}
