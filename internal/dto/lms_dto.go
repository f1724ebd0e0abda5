package dto

import (
	"time"

	"github.com/eduai-labs/eduai-api/pkg/lms"
)

// RubricCriterionInput is one criterion supplied when creating an assignment.
type RubricCriterionInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Points      float64 `json:"points" validate:"gte=0"`
}

// RubricAssessmentInput scores one criterion when posting a grade.
type RubricAssessmentInput struct {
	Points   float64 `json:"points"`
	Comments string  `json:"comments,omitempty"`
}

// LMSPostRequest is the action-dispatched body for POST /api/lms.
//
// Grade is untyped because callers send either a number or a string; the
// gateway stringifies whichever arrives before posting it upstream.
type LMSPostRequest struct {
	Action           string                           `json:"action" validate:"required"`
	CourseID         string                           `json:"courseId"`
	AssignmentID     string                           `json:"assignmentId"`
	StudentID        string                           `json:"studentId"`
	Grade            interface{}                      `json:"grade"`
	Comment          string                           `json:"comment"`
	RubricAssessment map[string]RubricAssessmentInput `json:"rubricAssessment"`
	Title            string                           `json:"title"`
	Description      string                           `json:"description"`
	DueDate          string                           `json:"dueDate"`
	TotalPoints      float64                          `json:"totalPoints"`
	RubricCriteria   []RubricCriterionInput           `json:"rubricCriteria"`
}

// RubricResponse pairs an assignment with its rubric for the rubric action.
type RubricResponse struct {
	Rubric     []lms.RubricCriterion `json:"rubric"`
	Assignment lms.Assignment        `json:"assignment"`
}

// SubmissionStats summarises grading progress within a course.
type SubmissionStats struct {
	Graded  int `json:"graded"`
	Pending int `json:"pending"`
	Missing int `json:"missing"`
}

// RecentGrade is one recently graded submission sampled for the dashboard.
type RecentGrade struct {
	StudentName    string    `json:"studentName"`
	AssignmentName string    `json:"assignmentName"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"maxScore"`
	GradedAt       time.Time `json:"gradedAt"`
}

// CourseAnalytics aggregates one course's grading picture.
type CourseAnalytics struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	StudentCount    int             `json:"studentCount"`
	AssignmentCount int             `json:"assignmentCount"`
	AvgScore        int             `json:"avgScore"`
	Submissions     SubmissionStats `json:"submissions"`
	RecentGrades    []RecentGrade   `json:"recentGrades"`
}

// AnalyticsResponse is the cross-course aggregate for the analytics action.
type AnalyticsResponse struct {
	Courses          []CourseAnalytics `json:"courses"`
	TotalStudents    int               `json:"totalStudents"`
	TotalAssignments int               `json:"totalAssignments"`
	OverallAverage   int               `json:"overallAverage"`
	TotalGraded      int               `json:"totalGraded"`
	TotalPending     int               `json:"totalPending"`
}
