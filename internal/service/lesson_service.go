package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/pkg/llm"
)

const lessonSystemPrompt = `You are an expert curriculum designer. Generate detailed, standards-aligned lesson plans.

For each lesson plan, include:
1. **Learning Objectives** (2-3 clear, measurable objectives)
2. **Materials Needed** (list of required materials)
3. **Introduction** (5-10 min hook activity)
4. **Direct Instruction** (15-20 min main teaching)
5. **Guided Practice** (10-15 min collaborative activity)
6. **Independent Practice** (10-15 min individual work)
7. **Assessment** (how to check understanding)
8. **Differentiation** (modifications for different learners)
9. **Closure** (5 min wrap-up)

Make the lesson engaging, practical, and age-appropriate. Use markdown formatting.`

// LessonService generates lesson plans.
type LessonService interface {
	Generate(ctx context.Context, req dto.LessonRequest) (dto.LessonResponse, error)
}

type lessonService struct {
	completer llm.Completer
	logger    zerolog.Logger
}

// NewLessonService constructs the lesson planning service. A nil completer
// means the model integration is unconfigured.
func NewLessonService(completer llm.Completer, logger zerolog.Logger) LessonService {
	return &lessonService{
		completer: completer,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) Generate(ctx context.Context, req dto.LessonRequest) (dto.LessonResponse, error) {
	if s.completer == nil {
		return dto.LessonResponse{}, ErrModelNotConfigured
	}

	subject := req.Subject
	if subject == "" {
		subject = "General"
	}
	duration := req.Duration
	if duration == "" {
		duration = "45-50 minutes"
	}

	userPrompt := fmt.Sprintf(`Create a detailed lesson plan for:
- Topic: %s
- Grade Level: %s
- Subject: %s
- Duration: %s

Make it engaging and include interactive elements appropriate for %s students.`, req.Topic, req.Grade, subject, duration, req.Grade)

	content, err := s.completer.Complete(ctx, llm.Request{
		System:      lessonSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt}},
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		return dto.LessonResponse{}, err
	}

	if content == "" {
		content = "Failed to generate lesson plan."
	}

	return dto.LessonResponse{LessonPlan: content}, nil
}
