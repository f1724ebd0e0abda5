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

// LMSHandler wires the action-dispatched LMS gateway endpoints.
type LMSHandler struct {
	service   service.LMSService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLMSHandler creates an LMS handler instance.
func NewLMSHandler(service service.LMSService, validator *validator.Validate, logger zerolog.Logger) *LMSHandler {
	return &LMSHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "lms_handler").Logger(),
	}
}

// Register binds the LMS gateway routes.
func (h *LMSHandler) Register(router fiber.Router) {
	router.Get("/lms", h.query)
	router.Post("/lms", h.mutate)
}

// query dispatches read actions keyed by the action query parameter, matching
// the dashboard's calling convention.
func (h *LMSHandler) query(c *fiber.Ctx) error {
	ctx := requestContext(c)
	courseID := c.Query("courseId")
	assignmentID := c.Query("assignmentId")

	switch c.Query("action") {
	case "courses":
		courses, err := h.service.Courses(ctx)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"courses": courses})

	case "assignments":
		if courseID == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId required")
		}
		assignments, err := h.service.Assignments(ctx, courseID)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"assignments": assignments})

	case "submissions":
		if courseID == "" || assignmentID == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId and assignmentId required")
		}
		submissions, err := h.service.Submissions(ctx, courseID, assignmentID)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"submissions": submissions})

	case "rubric":
		if courseID == "" || assignmentID == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId and assignmentId required")
		}
		rubric, err := h.service.Rubric(ctx, courseID, assignmentID)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"rubric": rubric.Rubric, "assignment": rubric.Assignment})

	case "students":
		if courseID == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId required")
		}
		students, err := h.service.Students(ctx, courseID)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"students": students})

	case "analytics":
		analytics, err := h.service.Analytics(ctx)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"analytics": analytics})

	default:
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid action")
	}
}

func (h *LMSHandler) mutate(c *fiber.Ctx) error {
	var req dto.LMSPostRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx := requestContext(c)

	switch req.Action {
	case "postGrade":
		if req.CourseID == "" || req.AssignmentID == "" || req.StudentID == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId, assignmentId, and studentId required")
		}
		result, err := h.service.PostGrade(ctx, req)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true, "result": result})

	case "createAssignment":
		if req.CourseID == "" || req.Title == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "courseId and title required")
		}
		if err := h.validator.Struct(req); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid rubric criteria")
		}
		assignment, err := h.service.CreateAssignment(ctx, req)
		if err != nil {
			return h.sendServiceError(c, err)
		}
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true, "assignment": assignment})

	default:
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid action")
	}
}

// sendServiceError keeps upstream error text on the wire so the dashboard can
// show what the LMS actually said.
func (h *LMSHandler) sendServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidDueDate) {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	requestLogger(h.logger, c).Error().Err(err).Msg("LMS gateway call failed")
	return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
}
