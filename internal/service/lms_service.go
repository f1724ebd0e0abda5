package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/pkg/lms"
)

// ErrLMSNotConfigured indicates no LMS access token was provided.
var ErrLMSNotConfigured = errors.New("LMS access token not configured. Set EDUAI_LMS_TOKEN to a valid access token")

// ErrInvalidDueDate indicates the due date could not be parsed.
var ErrInvalidDueDate = errors.New("invalid dueDate, expected an ISO timestamp or YYYY-MM-DD")

const (
	analyticsCacheKey         = "lms:analytics"
	analyticsCourseLimit      = 5
	analyticsAssignmentSample = 3
	recentGradeLimit          = 10
)

// LMSService translates dashboard actions into LMS API calls.
type LMSService interface {
	Courses(ctx context.Context) ([]lms.Course, error)
	Assignments(ctx context.Context, courseID string) ([]lms.Assignment, error)
	Submissions(ctx context.Context, courseID, assignmentID string) ([]lms.Submission, error)
	Rubric(ctx context.Context, courseID, assignmentID string) (dto.RubricResponse, error)
	Students(ctx context.Context, courseID string) ([]lms.User, error)
	Analytics(ctx context.Context) (dto.AnalyticsResponse, error)
	PostGrade(ctx context.Context, req dto.LMSPostRequest) (json.RawMessage, error)
	CreateAssignment(ctx context.Context, req dto.LMSPostRequest) (lms.Assignment, error)
}

type lmsService struct {
	client    lms.API
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLMSService constructs the gateway service. A nil client means the LMS
// integration is unconfigured; a nil cache disables analytics caching.
func NewLMSService(client lms.API, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) LMSService {
	return &lmsService{
		client:    client,
		cache:     cache,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "lms_service").Logger(),
		now:       time.Now,
	}
}

func (s *lmsService) Courses(ctx context.Context) ([]lms.Course, error) {
	if s.client == nil {
		return nil, ErrLMSNotConfigured
	}
	return s.client.ListCourses(ctx)
}

func (s *lmsService) Assignments(ctx context.Context, courseID string) ([]lms.Assignment, error) {
	if s.client == nil {
		return nil, ErrLMSNotConfigured
	}
	return s.client.ListAssignments(ctx, courseID, true)
}

func (s *lmsService) Submissions(ctx context.Context, courseID, assignmentID string) ([]lms.Submission, error) {
	if s.client == nil {
		return nil, ErrLMSNotConfigured
	}
	return s.client.ListSubmissions(ctx, courseID, assignmentID)
}

func (s *lmsService) Rubric(ctx context.Context, courseID, assignmentID string) (dto.RubricResponse, error) {
	if s.client == nil {
		return dto.RubricResponse{}, ErrLMSNotConfigured
	}

	assignment, err := s.client.GetAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return dto.RubricResponse{}, err
	}

	return dto.RubricResponse{Rubric: assignment.Rubric, Assignment: assignment}, nil
}

func (s *lmsService) Students(ctx context.Context, courseID string) ([]lms.User, error) {
	if s.client == nil {
		return nil, ErrLMSNotConfigured
	}
	return s.client.ListStudents(ctx, courseID)
}

func (s *lmsService) PostGrade(ctx context.Context, req dto.LMSPostRequest) (json.RawMessage, error) {
	if s.client == nil {
		return nil, ErrLMSNotConfigured
	}

	payload := lms.GradePayload{}
	if req.Grade != nil {
		payload.Submission.PostedGrade = fmt.Sprint(req.Grade)
	}
	if req.Comment != "" {
		payload.Comment = &lms.CommentField{TextComment: req.Comment}
	}
	if len(req.RubricAssessment) > 0 {
		assessment := make(map[string]lms.RubricAssessmentEntry, len(req.RubricAssessment))
		for criterionID, entry := range req.RubricAssessment {
			assessment[criterionID] = lms.RubricAssessmentEntry{Points: entry.Points, Comments: entry.Comments}
		}
		payload.RubricAssessment = assessment
	}

	return s.client.UpdateSubmission(ctx, req.CourseID, req.AssignmentID, req.StudentID, payload)
}

// CreateAssignment creates the assignment and then, best effort, a rubric
// associated with it. Rubric failure is logged and swallowed: the assignment
// already exists upstream and rolling it back would lose the teacher's work,
// so partial success is returned instead.
func (s *lmsService) CreateAssignment(ctx context.Context, req dto.LMSPostRequest) (lms.Assignment, error) {
	if s.client == nil {
		return lms.Assignment{}, ErrLMSNotConfigured
	}

	tracer := otel.Tracer("github.com/eduai-labs/eduai-api/internal/service/lms")
	ctx, span := tracer.Start(ctx, "lms.create_assignment")
	span.SetAttributes(
		attribute.String("lms.course_id", req.CourseID),
		attribute.Int("lms.rubric_criteria", len(req.RubricCriteria)),
	)
	defer span.End()

	totalPoints := req.TotalPoints
	if totalPoints <= 0 {
		totalPoints = 100
	}

	fields := lms.AssignmentFields{
		Name:            req.Title,
		Description:     s.sanitizer.Sanitize(req.Description),
		PointsPossible:  totalPoints,
		SubmissionTypes: []string{"online_text_entry", "online_upload"},
		Published:       true,
	}

	if req.DueDate != "" {
		dueAt, err := parseDueDate(req.DueDate)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid_due_date")
			return lms.Assignment{}, ErrInvalidDueDate
		}
		fields.DueAt = dueAt.UTC().Format(time.RFC3339)
	}

	assignment, err := s.client.CreateAssignment(ctx, req.CourseID, lms.AssignmentPayload{Assignment: fields})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_creation_failed")
		return lms.Assignment{}, err
	}

	if len(req.RubricCriteria) > 0 {
		rubric := buildRubricPayload(req.Title, totalPoints, assignment.ID, req.RubricCriteria)
		if err := s.client.CreateRubric(ctx, req.CourseID, rubric); err != nil {
			s.logger.Warn().Err(err).Int64("assignment_id", assignment.ID).Msg("rubric creation failed, assignment kept without rubric")
			span.RecordError(err)
		}
	}

	return assignment, nil
}

func parseDueDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}

func buildRubricPayload(title string, totalPoints float64, assignmentID int64, criteria []dto.RubricCriterionInput) lms.RubricPayload {
	criteriaMap := make(map[string]lms.CriterionPayload, len(criteria))
	for index, criterion := range criteria {
		criteriaMap[strconv.Itoa(index)] = lms.CriterionPayload{
			Description:     criterion.Name,
			LongDescription: criterion.Description,
			Points:          criterion.Points,
			Ratings: map[string]lms.RatingPayload{
				"0": {Description: "Full Marks", Points: criterion.Points},
				"1": {Description: "Partial", Points: math.Floor(criterion.Points / 2)},
				"2": {Description: "No Marks", Points: 0},
			},
		}
	}

	return lms.RubricPayload{
		Rubric: lms.RubricFields{
			Title:          fmt.Sprintf("%s Rubric", title),
			PointsPossible: totalPoints,
			Criteria:       criteriaMap,
		},
		RubricAssociation: lms.RubricAssociation{
			AssociationID:   assignmentID,
			AssociationType: "Assignment",
			UseForGrading:   true,
			Purpose:         "grading",
		},
	}
}

// Analytics aggregates grading data across the teacher's courses. A course
// whose fetches fail is logged and omitted from the aggregate rather than
// failing the whole report.
func (s *lmsService) Analytics(ctx context.Context) (dto.AnalyticsResponse, error) {
	if s.client == nil {
		return dto.AnalyticsResponse{}, ErrLMSNotConfigured
	}

	tracer := otel.Tracer("github.com/eduai-labs/eduai-api/internal/service/lms")
	ctx, span := tracer.Start(ctx, "lms.analytics")
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, analyticsCacheKey).Result(); err == nil {
			var response dto.AnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	courses, err := s.client.ListCourses(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "course_list_failed")
		return dto.AnalyticsResponse{}, err
	}

	if len(courses) > analyticsCourseLimit {
		courses = courses[:analyticsCourseLimit]
	}

	response := dto.AnalyticsResponse{Courses: make([]dto.CourseAnalytics, 0, len(courses))}

	for _, course := range courses {
		courseData, err := s.aggregateCourse(ctx, course)
		if err != nil {
			s.logger.Warn().Err(err).Int64("course_id", course.ID).Msg("skipping course in analytics aggregation")
			span.RecordError(err)
			continue
		}

		response.Courses = append(response.Courses, courseData)
		response.TotalStudents += courseData.StudentCount
		response.TotalAssignments += courseData.AssignmentCount
		response.TotalGraded += courseData.Submissions.Graded
		response.TotalPending += courseData.Submissions.Pending
	}

	if len(response.Courses) > 0 {
		total := 0
		for _, course := range response.Courses {
			total += course.AvgScore
		}
		response.OverallAverage = int(math.Round(float64(total) / float64(len(response.Courses))))
	}

	span.SetAttributes(attribute.Int("analytics.course_count", len(response.Courses)))

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, analyticsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return response, nil
}

func (s *lmsService) aggregateCourse(ctx context.Context, course lms.Course) (dto.CourseAnalytics, error) {
	courseID := strconv.FormatInt(course.ID, 10)

	enrollments, err := s.client.ListEnrollments(ctx, courseID)
	if err != nil {
		return dto.CourseAnalytics{}, err
	}

	assignments, err := s.client.ListAssignments(ctx, courseID, false)
	if err != nil {
		return dto.CourseAnalytics{}, err
	}

	totalScore := 0.0
	gradedCount := 0
	for _, enrollment := range enrollments {
		if enrollment.Grades != nil && enrollment.Grades.CurrentScore != nil {
			totalScore += *enrollment.Grades.CurrentScore
			gradedCount++
		}
	}

	avgScore := 0
	if gradedCount > 0 {
		avgScore = int(math.Round(totalScore / float64(gradedCount)))
	}

	recentGrades := s.sampleRecentGrades(ctx, courseID, assignments)

	return dto.CourseAnalytics{
		ID:              course.ID,
		Name:            course.Name,
		StudentCount:    len(enrollments),
		AssignmentCount: len(assignments),
		AvgScore:        avgScore,
		Submissions: dto.SubmissionStats{
			Graded:  gradedCount,
			Pending: len(enrollments) - gradedCount,
			Missing: 0,
		},
		RecentGrades: recentGrades,
	}, nil
}

// sampleRecentGrades inspects the first few assignments for graded
// submissions. A failed submissions fetch skips that assignment only.
func (s *lmsService) sampleRecentGrades(ctx context.Context, courseID string, assignments []lms.Assignment) []dto.RecentGrade {
	sample := assignments
	if len(sample) > analyticsAssignmentSample {
		sample = sample[:analyticsAssignmentSample]
	}

	recentGrades := make([]dto.RecentGrade, 0, recentGradeLimit)
	for _, assignment := range sample {
		submissions, err := s.client.ListRecentSubmissions(ctx, courseID, strconv.FormatInt(assignment.ID, 10))
		if err != nil {
			s.logger.Debug().Err(err).Int64("assignment_id", assignment.ID).Msg("skipping assignment in recent-grade sampling")
			continue
		}

		maxScore := assignment.PointsPossible
		if maxScore <= 0 {
			maxScore = 100
		}

		for _, submission := range submissions {
			if submission.Score == nil || submission.GradedAt == nil {
				continue
			}

			studentName := "Unknown"
			if submission.User != nil && submission.User.Name != "" {
				studentName = submission.User.Name
			}

			recentGrades = append(recentGrades, dto.RecentGrade{
				StudentName:    studentName,
				AssignmentName: assignment.Name,
				Score:          *submission.Score,
				MaxScore:       maxScore,
				GradedAt:       *submission.GradedAt,
			})
		}
	}

	sort.Slice(recentGrades, func(i, j int) bool {
		return recentGrades[i].GradedAt.After(recentGrades[j].GradedAt)
	})

	if len(recentGrades) > recentGradeLimit {
		recentGrades = recentGrades[:recentGradeLimit]
	}

	return recentGrades
}
