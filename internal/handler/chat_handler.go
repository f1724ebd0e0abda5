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

// ChatHandler wires the assistant chat endpoint.
type ChatHandler struct {
	service   service.ChatService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatHandler creates a chat handler instance.
func NewChatHandler(service service.ChatService, validator *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register binds the chat route.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.respond)
}

func (h *ChatHandler) respond(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Messages) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "messages required")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "each message needs a role (user or assistant) and content")
	}

	response, err := h.service.Respond(requestContext(c), req)
	if err != nil {
		if errors.Is(err, service.ErrModelNotConfigured) {
			return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("chat completion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to generate response. Please check your API key.")
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}
