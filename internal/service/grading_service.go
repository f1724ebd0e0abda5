package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/pkg/llm"
)

// ErrModelNotConfigured indicates no model API key was provided.
var ErrModelNotConfigured = errors.New("Groq API key not configured. Get a FREE key at https://console.groq.com/keys")

const freeTextGradingPrompt = `You are an expert educational assessment specialist. Grade student work fairly and provide constructive feedback.

When grading:
1. Evaluate based on the provided rubric criteria
2. Be fair and consistent
3. Provide specific, actionable feedback
4. Highlight both strengths and areas for improvement
5. Be encouraging while maintaining high standards
6. Give a numerical score and letter grade

Format your response as:
## Grade: [Letter Grade] ([Percentage]%)

### Rubric Breakdown:
[Score each rubric criterion]

### Strengths:
[List 2-3 specific strengths]

### Areas for Improvement:
[List 2-3 specific suggestions]

### Overall Feedback:
[2-3 sentences of encouraging, constructive feedback]

IMPORTANT: This is a suggested grade. Human review is always required before finalizing grades.`

const structuredGradingPrompt = `You are an expert educational assessment specialist. Grade student work based on a structured rubric with specific criteria.

You MUST respond with ONLY valid JSON in this exact format:
{
  "totalScore": <number>,
  "percentage": <number>,
  "letterGrade": "<A/B/C/D/F with +/- if applicable>",
  "criteriaScores": [
    {
      "criterionId": "<id from input>",
      "criterionName": "<name>",
      "pointsEarned": <number>,
      "pointsPossible": <number>,
      "feedback": "<brief feedback for this criterion>"
    }
  ],
  "strengths": ["<strength 1>", "<strength 2>"],
  "improvements": ["<improvement 1>", "<improvement 2>"],
  "overallFeedback": "<2-3 sentences of constructive feedback>"
}

Be fair and consistent. Score each criterion based on the student's work quality.`

// rubricGradesSchema gates which extracted JSON objects count as structured
// grades. Models sometimes emit a syntactically valid object that is missing
// the scoring fields; those fall back to free-text feedback.
var rubricGradesSchema = jsonschema.MustCompileString("rubric_grades.json", `{
	"type": "object",
	"required": ["totalScore", "percentage", "letterGrade", "criteriaScores", "overallFeedback"],
	"properties": {
		"totalScore": {"type": "number"},
		"percentage": {"type": "number"},
		"letterGrade": {"type": "string"},
		"criteriaScores": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["criterionName", "pointsEarned", "pointsPossible"],
				"properties": {
					"criterionId": {"type": "string"},
					"criterionName": {"type": "string"},
					"pointsEarned": {"type": "number"},
					"pointsPossible": {"type": "number"},
					"feedback": {"type": "string"}
				}
			}
		},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}},
		"overallFeedback": {"type": "string"}
	}
}`)

// GradingService produces suggested grades for student work.
type GradingService interface {
	Grade(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error)
}

type gradingService struct {
	completer llm.Completer
	logger    zerolog.Logger
}

// NewGradingService constructs the grading service. A nil completer means the
// model integration is unconfigured.
func NewGradingService(completer llm.Completer, logger zerolog.Logger) GradingService {
	return &gradingService{
		completer: completer,
		logger:    logger.With().Str("component", "grading_service").Logger(),
	}
}

// Grade runs structured rubric grading when criteria are supplied, otherwise
// free-text grading against the prose rubric.
func (s *gradingService) Grade(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error) {
	if s.completer == nil {
		return dto.GradeResponse{}, ErrModelNotConfigured
	}

	tracer := otel.Tracer("github.com/eduai-labs/eduai-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.grade")
	span.SetAttributes(attribute.Bool("grading.structured", len(req.RubricCriteria) > 0))
	defer span.End()

	if len(req.RubricCriteria) > 0 {
		return s.gradeStructured(ctx, span, req)
	}
	return s.gradeFreeText(ctx, span, req)
}

func (s *gradingService) gradeStructured(ctx context.Context, span trace.Span, req dto.GradeRequest) (dto.GradeResponse, error) {
	assignmentType := req.AssignmentType
	if assignmentType == "" {
		assignmentType = "Assignment"
	}

	criteriaJSON, err := json.MarshalIndent(req.RubricCriteria, "", "  ")
	if err != nil {
		return dto.GradeResponse{}, fmt.Errorf("failed to encode rubric criteria: %w", err)
	}

	userPrompt := fmt.Sprintf(`Grade this student work using the provided rubric criteria.

**Assignment:** %s

**Rubric Criteria (JSON):**
%s

**Student Work:**
%s

Respond with ONLY valid JSON matching the required format. Score each criterion fairly.`, assignmentType, criteriaJSON, req.StudentWork)

	content, err := s.completer.Complete(ctx, llm.Request{
		System:      structuredGradingPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt}},
		MaxTokens:   1500,
		Temperature: 0.2,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion_failed")
		return dto.GradeResponse{}, err
	}

	if grades, ok := s.parseRubricGrades(content); ok {
		return dto.GradeResponse{Feedback: renderRubricFeedback(grades), RubricGrades: &grades}, nil
	}

	// The model ignored the JSON contract. The prose it produced is still a
	// usable assessment, so return it as plain feedback.
	s.logger.Debug().Msg("structured grading output was not parseable, returning raw feedback")
	span.SetAttributes(attribute.Bool("grading.fallback", true))
	return dto.GradeResponse{Feedback: content}, nil
}

func (s *gradingService) gradeFreeText(ctx context.Context, span trace.Span, req dto.GradeRequest) (dto.GradeResponse, error) {
	assignmentType := req.AssignmentType
	if assignmentType == "" {
		assignmentType = "General Assignment"
	}

	userPrompt := fmt.Sprintf(`Please grade the following student work:

**Assignment Type:** %s

**Grading Rubric:**
%s

**Student Work:**
%s

Provide a detailed assessment with a suggested grade.`, assignmentType, req.Rubric, req.StudentWork)

	content, err := s.completer.Complete(ctx, llm.Request{
		System:      freeTextGradingPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt}},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion_failed")
		return dto.GradeResponse{}, err
	}

	if content == "" {
		content = "Failed to generate feedback."
	}

	return dto.GradeResponse{Feedback: content}, nil
}

func (s *gradingService) parseRubricGrades(content string) (dto.RubricGrades, bool) {
	extracted, ok := llm.ExtractJSONObject(content)
	if !ok {
		return dto.RubricGrades{}, false
	}

	var value interface{}
	if err := json.Unmarshal([]byte(extracted), &value); err != nil {
		return dto.RubricGrades{}, false
	}
	if err := rubricGradesSchema.Validate(value); err != nil {
		s.logger.Debug().Err(err).Msg("extracted grading JSON failed schema validation")
		return dto.RubricGrades{}, false
	}

	var grades dto.RubricGrades
	if err := json.Unmarshal([]byte(extracted), &grades); err != nil {
		return dto.RubricGrades{}, false
	}
	return grades, true
}

func renderRubricFeedback(grades dto.RubricGrades) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Grade: %s (%s%%)\n\n", grades.LetterGrade, formatPoints(grades.Percentage))

	b.WriteString("### Rubric Breakdown:\n")
	for _, score := range grades.CriteriaScores {
		fmt.Fprintf(&b, "- **%s**: %s/%s pts - %s\n", score.CriterionName, formatPoints(score.PointsEarned), formatPoints(score.PointsPossible), score.Feedback)
	}

	b.WriteString("\n### Strengths:\n")
	for _, strength := range grades.Strengths {
		fmt.Fprintf(&b, "- %s\n", strength)
	}

	b.WriteString("\n### Areas for Improvement:\n")
	for _, improvement := range grades.Improvements {
		fmt.Fprintf(&b, "- %s\n", improvement)
	}

	b.WriteString("\n### Overall Feedback:\n")
	b.WriteString(grades.OverallFeedback)

	return b.String()
}

func formatPoints(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
