package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/service"
	"github.com/eduai-labs/eduai-api/internal/utils"
)

// GradingHandler wires the grading facade endpoint.
type GradingHandler struct {
	service   service.GradingService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradingHandler creates a grading handler instance.
func NewGradingHandler(service service.GradingService, validator *validator.Validate, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register binds the grading route.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("/grade", h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.StudentWork) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "studentWork required")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "studentWork required")
	}

	response, err := h.service.Grade(requestContext(c), req)
	if err != nil {
		if errors.Is(err, service.ErrModelNotConfigured) {
			return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("grading failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to grade assignment. Please check your API key.")
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}
