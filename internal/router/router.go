package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eduai-labs/eduai-api/internal/config"
	"github.com/eduai-labs/eduai-api/internal/handler"
	"github.com/eduai-labs/eduai-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	HealthHandler    *handler.HealthHandler
	LMSHandler       *handler.LMSHandler
	GradingHandler   *handler.GradingHandler
	LessonHandler    *handler.LessonHandler
	ChatHandler      *handler.ChatHandler
	DetectHandler    *handler.DetectHandler
	WorkspaceHandler *handler.WorkspaceHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}
	api.Get("/metrics", observability.MetricsHandler())

	if deps.LMSHandler != nil {
		deps.LMSHandler.Register(api)
	}
	if deps.GradingHandler != nil {
		deps.GradingHandler.Register(api)
	}
	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.Register(api)
	}
	if deps.DetectHandler != nil {
		deps.DetectHandler.Register(api)
	}
	if deps.WorkspaceHandler != nil {
		deps.WorkspaceHandler.Register(api)
	}
}
