package lms

import "time"

// Course is a course the authenticated teacher can act on.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Rating is one descriptive tier of a rubric criterion.
type Rating struct {
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// RubricCriterion is a single scoring criterion attached to an assignment.
type RubricCriterion struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description,omitempty"`
	Points          float64  `json:"points"`
	Ratings         []Rating `json:"ratings,omitempty"`
}

// Assignment mirrors the LMS assignment resource.
type Assignment struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	DueAt          *time.Time        `json:"due_at"`
	PointsPossible float64           `json:"points_possible"`
	Rubric         []RubricCriterion `json:"rubric,omitempty"`
}

// User is a course participant.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SortableName string `json:"sortable_name,omitempty"`
	Email        string `json:"email,omitempty"`
}

// SubmissionComment is a comment thread entry on a submission.
type SubmissionComment struct {
	AuthorName string `json:"author_name"`
	Comment    string `json:"comment"`
}

// Attachment is a file attached to a submission, referenced by URL only.
type Attachment struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// Submission mirrors the LMS submission resource.
type Submission struct {
	ID                 int64               `json:"id"`
	UserID             int64               `json:"user_id"`
	User               *User               `json:"user,omitempty"`
	Body               string              `json:"body"`
	Grade              string              `json:"grade"`
	Score              *float64            `json:"score"`
	SubmittedAt        *time.Time          `json:"submitted_at"`
	GradedAt           *time.Time          `json:"graded_at,omitempty"`
	WorkflowState      string              `json:"workflow_state"`
	Attachments        []Attachment        `json:"attachments,omitempty"`
	SubmissionComments []SubmissionComment `json:"submission_comments,omitempty"`
}

// EnrollmentGrades carries the current score for one enrollment.
type EnrollmentGrades struct {
	CurrentScore *float64 `json:"current_score"`
}

// Enrollment is an active student enrollment within a course.
type Enrollment struct {
	ID     int64             `json:"id"`
	UserID int64             `json:"user_id"`
	Grades *EnrollmentGrades `json:"grades,omitempty"`
}

// SubmissionField carries the grade to post on a submission.
type SubmissionField struct {
	PostedGrade string `json:"posted_grade,omitempty"`
}

// CommentField carries a text comment to attach alongside a grade.
type CommentField struct {
	TextComment string `json:"text_comment"`
}

// RubricAssessmentEntry scores one rubric criterion on a submission.
type RubricAssessmentEntry struct {
	Points   float64 `json:"points"`
	Comments string  `json:"comments,omitempty"`
}

// GradePayload is the body for updating one submission.
type GradePayload struct {
	Submission       SubmissionField                  `json:"submission"`
	Comment          *CommentField                    `json:"comment,omitempty"`
	RubricAssessment map[string]RubricAssessmentEntry `json:"rubric_assessment,omitempty"`
}

// AssignmentFields describes a new assignment to create.
type AssignmentFields struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DueAt           string   `json:"due_at,omitempty"`
	PointsPossible  float64  `json:"points_possible"`
	SubmissionTypes []string `json:"submission_types"`
	Published       bool     `json:"published"`
}

// AssignmentPayload wraps the assignment creation body.
type AssignmentPayload struct {
	Assignment AssignmentFields `json:"assignment"`
}

// RatingPayload is one rating tier of a rubric criterion being created.
type RatingPayload struct {
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// CriterionPayload is one criterion of a rubric being created. The LMS wants
// criteria and ratings keyed by stringified index rather than as arrays.
type CriterionPayload struct {
	Description     string                   `json:"description"`
	LongDescription string                   `json:"long_description"`
	Points          float64                  `json:"points"`
	Ratings         map[string]RatingPayload `json:"ratings"`
}

// RubricFields describes a new rubric.
type RubricFields struct {
	Title          string                      `json:"title"`
	PointsPossible float64                     `json:"points_possible"`
	Criteria       map[string]CriterionPayload `json:"criteria"`
}

// RubricAssociation binds a rubric to the assignment it grades.
type RubricAssociation struct {
	AssociationID   int64  `json:"association_id"`
	AssociationType string `json:"association_type"`
	UseForGrading   bool   `json:"use_for_grading"`
	Purpose         string `json:"purpose"`
}

// RubricPayload wraps the rubric creation body.
type RubricPayload struct {
	Rubric            RubricFields      `json:"rubric"`
	RubricAssociation RubricAssociation `json:"rubric_association"`
}
