package dto

// LessonRequest is the body for POST /api/lesson.
type LessonRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Grade    string `json:"grade" validate:"required"`
	Subject  string `json:"subject"`
	Duration string `json:"duration"`
}

// LessonResponse carries the generated markdown lesson plan.
type LessonResponse struct {
	LessonPlan string `json:"lessonPlan"`
}
