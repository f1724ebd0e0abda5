package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/service"
	"github.com/eduai-labs/eduai-api/internal/utils"
)

// minDetectionChars is the shortest text worth scoring; anything shorter
// produces meaningless detector output.
const minDetectionChars = 50

// DetectHandler wires the AI-detection facade endpoint.
type DetectHandler struct {
	service service.DetectService
	logger  zerolog.Logger
}

// NewDetectHandler creates a detection handler instance.
func NewDetectHandler(service service.DetectService, logger zerolog.Logger) *DetectHandler {
	return &DetectHandler{
		service: service,
		logger:  logger.With().Str("component", "detect_handler").Logger(),
	}
}

// Register binds the detection route.
func (h *DetectHandler) Register(router fiber.Router) {
	router.Post("/detect", h.analyze)
}

func (h *DetectHandler) analyze(c *fiber.Ctx) error {
	var req dto.DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(strings.TrimSpace(req.Text)) < minDetectionChars {
		return utils.SendError(c, fiber.StatusBadRequest, "Please provide at least 50 characters of text to analyze.")
	}

	response, err := h.service.Analyze(requestContext(c), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrDetectorNotConfigured) {
			return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("AI detection failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to analyze text. Please check your API key or try again.")
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}
