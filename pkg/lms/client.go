package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	lmsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eduai",
		Subsystem: "lms",
		Name:      "request_duration_seconds",
		Help:      "Duration of LMS API requests",
	}, []string{"method"})

	lmsFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Subsystem: "lms",
		Name:      "request_failures_total",
		Help:      "Number of failed LMS API requests",
	}, []string{"method"})
)

// APIError carries the upstream status and body text of a failed LMS call.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LMS API error: %d - %s", e.StatusCode, e.Body)
}

// API describes the LMS operations consumed by the gateway.
type API interface {
	ListCourses(ctx context.Context) ([]Course, error)
	ListAssignments(ctx context.Context, courseID string, includeRubric bool) ([]Assignment, error)
	ListSubmissions(ctx context.Context, courseID, assignmentID string) ([]Submission, error)
	GetAssignment(ctx context.Context, courseID, assignmentID string) (Assignment, error)
	ListStudents(ctx context.Context, courseID string) ([]User, error)
	ListEnrollments(ctx context.Context, courseID string) ([]Enrollment, error)
	ListRecentSubmissions(ctx context.Context, courseID, assignmentID string) ([]Submission, error)
	UpdateSubmission(ctx context.Context, courseID, assignmentID, studentID string, payload GradePayload) (json.RawMessage, error)
	CreateAssignment(ctx context.Context, courseID string, payload AssignmentPayload) (Assignment, error)
	CreateRubric(ctx context.Context, courseID string, payload RubricPayload) error
}

// Config defines configuration options for the LMS client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to a Canvas-style LMS REST API with static bearer auth.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// New builds an LMS client from the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("lms base url is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("lms access token is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    httpClient,
		logger:  cfg.Logger.With().Str("component", "lms_client").Logger(),
		tracer:  otel.Tracer("github.com/eduai-labs/eduai-api/pkg/lms"),
	}, nil
}

// ListCourses returns the courses where the token owner is enrolled as a teacher.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := c.do(ctx, http.MethodGet, "/courses?enrollment_type=teacher&state=available&per_page=50", nil, &courses)
	return courses, err
}

// ListAssignments returns up to 50 assignments for the course ordered by due date.
func (c *Client) ListAssignments(ctx context.Context, courseID string, includeRubric bool) ([]Assignment, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments?per_page=50&order_by=due_at", courseID)
	if includeRubric {
		endpoint += "&include[]=rubric"
	}

	var assignments []Assignment
	err := c.do(ctx, http.MethodGet, endpoint, nil, &assignments)
	return assignments, err
}

// ListSubmissions returns submissions with user and comment data included.
func (c *Client) ListSubmissions(ctx context.Context, courseID, assignmentID string) ([]Submission, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments/%s/submissions?per_page=100&include[]=user&include[]=submission_comments", courseID, assignmentID)

	var submissions []Submission
	err := c.do(ctx, http.MethodGet, endpoint, nil, &submissions)
	return submissions, err
}

// GetAssignment fetches a single assignment with its rubric included.
func (c *Client) GetAssignment(ctx context.Context, courseID, assignmentID string) (Assignment, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments/%s?include[]=rubric", courseID, assignmentID)

	var assignment Assignment
	err := c.do(ctx, http.MethodGet, endpoint, nil, &assignment)
	return assignment, err
}

// ListStudents returns the students enrolled in the course.
func (c *Client) ListStudents(ctx context.Context, courseID string) ([]User, error) {
	endpoint := fmt.Sprintf("/courses/%s/users?enrollment_type=student&per_page=100", courseID)

	var students []User
	err := c.do(ctx, http.MethodGet, endpoint, nil, &students)
	return students, err
}

// ListEnrollments returns active student enrollments including current grades.
func (c *Client) ListEnrollments(ctx context.Context, courseID string) ([]Enrollment, error) {
	endpoint := fmt.Sprintf("/courses/%s/enrollments?type[]=StudentEnrollment&state[]=active&per_page=100", courseID)

	var enrollments []Enrollment
	err := c.do(ctx, http.MethodGet, endpoint, nil, &enrollments)
	return enrollments, err
}

// ListRecentSubmissions fetches a small submission sample used for recent-grade reporting.
func (c *Client) ListRecentSubmissions(ctx context.Context, courseID, assignmentID string) ([]Submission, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments/%s/submissions?per_page=10&include[]=user", courseID, assignmentID)

	var submissions []Submission
	err := c.do(ctx, http.MethodGet, endpoint, nil, &submissions)
	return submissions, err
}

// UpdateSubmission posts a grade, comment and rubric assessment for one student.
func (c *Client) UpdateSubmission(ctx context.Context, courseID, assignmentID, studentID string, payload GradePayload) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments/%s/submissions/%s", courseID, assignmentID, studentID)

	var result json.RawMessage
	err := c.do(ctx, http.MethodPut, endpoint, payload, &result)
	return result, err
}

// CreateAssignment creates a published assignment in the course.
func (c *Client) CreateAssignment(ctx context.Context, courseID string, payload AssignmentPayload) (Assignment, error) {
	endpoint := fmt.Sprintf("/courses/%s/assignments", courseID)

	var assignment Assignment
	err := c.do(ctx, http.MethodPost, endpoint, payload, &assignment)
	return assignment, err
}

// CreateRubric creates a rubric and associates it with its assignment.
func (c *Client) CreateRubric(ctx context.Context, courseID string, payload RubricPayload) error {
	endpoint := fmt.Sprintf("/courses/%s/rubrics", courseID)
	return c.do(ctx, http.MethodPost, endpoint, payload, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, target interface{}) error {
	ctx, span := c.tracer.Start(ctx, "lms.request", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("lms.endpoint", endpoint),
	))
	defer span.End()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode lms request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build lms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	lmsDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		lmsFailures.WithLabelValues(method).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("lms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(text)}
		lmsFailures.WithLabelValues(method).Inc()
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("lms request rejected")
		return apiErr
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		lmsFailures.WithLabelValues(method).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("decode lms response: %w", err)
	}

	return nil
}
