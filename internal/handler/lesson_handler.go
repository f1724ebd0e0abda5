package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/service"
	"github.com/eduai-labs/eduai-api/internal/utils"
)

// LessonHandler wires the lesson-plan facade endpoint.
type LessonHandler struct {
	service   service.LessonService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLessonHandler creates a lesson handler instance.
func NewLessonHandler(service service.LessonService, validator *validator.Validate, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register binds the lesson route.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Post("/lesson", h.generate)
}

func (h *LessonHandler) generate(c *fiber.Ctx) error {
	var req dto.LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "topic and grade required")
	}

	response, err := h.service.Generate(requestContext(c), req)
	if err != nil {
		if errors.Is(err, service.ErrModelNotConfigured) {
			return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("lesson generation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to generate lesson plan. Please check your API key.")
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}
