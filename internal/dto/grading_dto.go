package dto

// GradingCriterion is a structured rubric criterion forwarded to the model.
type GradingCriterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Points      float64 `json:"points"`
}

// GradeRequest is the body for POST /api/grade. Either Rubric (free text) or
// RubricCriteria (structured) selects the grading mode.
type GradeRequest struct {
	StudentWork    string             `json:"studentWork" validate:"required"`
	Rubric         string             `json:"rubric"`
	AssignmentType string             `json:"assignmentType"`
	RubricCriteria []GradingCriterion `json:"rubricCriteria"`
}

// CriterionScore is the model's per-criterion assessment.
type CriterionScore struct {
	CriterionID    string  `json:"criterionId"`
	CriterionName  string  `json:"criterionName"`
	PointsEarned   float64 `json:"pointsEarned"`
	PointsPossible float64 `json:"pointsPossible"`
	Feedback       string  `json:"feedback"`
}

// RubricGrades is the structured scoring object extracted from model output.
type RubricGrades struct {
	TotalScore      float64          `json:"totalScore"`
	Percentage      float64          `json:"percentage"`
	LetterGrade     string           `json:"letterGrade"`
	CriteriaScores  []CriterionScore `json:"criteriaScores"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	OverallFeedback string           `json:"overallFeedback"`
}

// GradeResponse carries feedback text and, in structured mode, parsed scores.
type GradeResponse struct {
	Feedback     string        `json:"feedback"`
	RubricGrades *RubricGrades `json:"rubricGrades,omitempty"`
}
