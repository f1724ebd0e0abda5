package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/service"
	"github.com/eduai-labs/eduai-api/internal/utils"
	"github.com/eduai-labs/eduai-api/internal/workspace"
)

// WorkspaceHandler wires the planner collections: draft assignments, the
// lesson calendar, and saved lesson plans.
type WorkspaceHandler struct {
	store     *workspace.Store
	lms       service.LMSService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewWorkspaceHandler creates a workspace handler instance.
func NewWorkspaceHandler(store *workspace.Store, lms service.LMSService, validator *validator.Validate, logger zerolog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		store:     store,
		lms:       lms,
		validator: validator,
		logger:    logger.With().Str("component", "workspace_handler").Logger(),
	}
}

// Register binds the workspace routes under /workspace.
func (h *WorkspaceHandler) Register(router fiber.Router) {
	group := router.Group("/workspace")

	group.Get("/assignments", h.listAssignments)
	group.Post("/assignments", h.createAssignment)
	group.Delete("/assignments/:id", h.deleteAssignment)
	group.Post("/assignments/:id/publish", h.publishAssignment)

	group.Get("/schedule", h.listSchedule)
	group.Post("/schedule", h.scheduleLesson)
	group.Get("/schedule/:id/details", h.scheduleDetails)
	group.Delete("/schedule/:id", h.deleteLesson)

	group.Get("/plans", h.listPlans)
	group.Post("/plans", h.savePlan)
	group.Delete("/plans/:id", h.deletePlan)
}

func (h *WorkspaceHandler) listAssignments(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"assignments": h.store.ListAssignments()})
}

func (h *WorkspaceHandler) createAssignment(c *fiber.Ctx) error {
	var req dto.WorkspaceAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "title required")
	}

	criteria := make([]workspace.RubricCriterion, 0, len(req.RubricCriteria))
	for _, criterion := range req.RubricCriteria {
		criteria = append(criteria, workspace.RubricCriterion{
			Name:        criterion.Name,
			Description: criterion.Description,
			Points:      criterion.Points,
		})
	}

	created := h.store.AddAssignment(workspace.Assignment{
		Title:          req.Title,
		Subject:        req.Subject,
		Description:    req.Description,
		DueDate:        req.DueDate,
		RubricCriteria: criteria,
	})

	return utils.SendJSON(c, fiber.StatusCreated, fiber.Map{"assignment": created})
}

func (h *WorkspaceHandler) deleteAssignment(c *fiber.Ctx) error {
	if !h.store.DeleteAssignment(c.Params("id")) {
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true})
}

// publishAssignment pushes a draft to the LMS through the same path as a
// direct createAssignment action, so the rubric best-effort policy applies.
func (h *WorkspaceHandler) publishAssignment(c *fiber.Ctx) error {
	draft, ok := h.store.GetAssignment(c.Params("id"))
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	}

	var req dto.PublishAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "courseId required")
	}

	criteria := make([]dto.RubricCriterionInput, 0, len(draft.RubricCriteria))
	for _, criterion := range draft.RubricCriteria {
		criteria = append(criteria, dto.RubricCriterionInput{
			Name:        criterion.Name,
			Description: criterion.Description,
			Points:      criterion.Points,
		})
	}

	published, err := h.lms.CreateAssignment(requestContext(c), dto.LMSPostRequest{
		Action:         "createAssignment",
		CourseID:       req.CourseID,
		Title:          draft.Title,
		Description:    draft.Description,
		DueDate:        draft.DueDate,
		TotalPoints:    draft.TotalPoints,
		RubricCriteria: criteria,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Str("assignment_id", draft.ID).Msg("publishing draft assignment failed")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true, "assignment": published})
}

func (h *WorkspaceHandler) listSchedule(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"schedule": h.store.ListLessons()})
}

func (h *WorkspaceHandler) scheduleLesson(c *fiber.Ctx) error {
	var req dto.ScheduleLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "title, date, and type (lesson or assignment) required")
	}

	created := h.store.AddLesson(workspace.ScheduledLesson{
		Title:        req.Title,
		Subject:      req.Subject,
		Date:         req.Date,
		Time:         req.Time,
		Duration:     req.Duration,
		Type:         req.Type,
		AssignmentID: req.AssignmentID,
		LessonPlanID: req.LessonPlanID,
	})

	return utils.SendJSON(c, fiber.StatusCreated, fiber.Map{"lesson": created})
}

// scheduleDetails resolves a slot's weak references. A dangling reference
// yields a nil detail, not an error.
func (h *WorkspaceHandler) scheduleDetails(c *fiber.Ctx) error {
	lesson, ok := h.store.GetLesson(c.Params("id"))
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
	}

	details := dto.ScheduleDetails{Lesson: lesson}
	if lesson.AssignmentID != "" {
		if assignment, ok := h.store.GetAssignment(lesson.AssignmentID); ok {
			details.Assignment = &assignment
		}
	}
	if lesson.LessonPlanID != "" {
		if plan, ok := h.store.GetPlan(lesson.LessonPlanID); ok {
			details.LessonPlan = &plan
		}
	}

	return utils.SendJSON(c, fiber.StatusOK, details)
}

func (h *WorkspaceHandler) deleteLesson(c *fiber.Ctx) error {
	if !h.store.DeleteLesson(c.Params("id")) {
		return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true})
}

func (h *WorkspaceHandler) listPlans(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"plans": h.store.ListPlans()})
}

func (h *WorkspaceHandler) savePlan(c *fiber.Ctx) error {
	var req dto.SaveLessonPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "topic and content required")
	}

	created := h.store.AddPlan(workspace.LessonPlan{
		Topic:   req.Topic,
		Subject: req.Subject,
		Grade:   req.Grade,
		Content: req.Content,
	})

	return utils.SendJSON(c, fiber.StatusCreated, fiber.Map{"lessonPlan": created})
}

func (h *WorkspaceHandler) deletePlan(c *fiber.Ctx) error {
	if !h.store.DeletePlan(c.Params("id")) {
		return utils.SendError(c, fiber.StatusNotFound, "plan not found")
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"success": true})
}
