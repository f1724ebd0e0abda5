package dto

import "github.com/eduai-labs/eduai-api/internal/workspace"

// WorkspaceAssignmentRequest creates a draft assignment in the planner.
type WorkspaceAssignmentRequest struct {
	Title          string                 `json:"title" validate:"required"`
	Subject        string                 `json:"subject"`
	Description    string                 `json:"description"`
	DueDate        string                 `json:"dueDate"`
	RubricCriteria []RubricCriterionInput `json:"rubricCriteria" validate:"dive"`
}

// ScheduleLessonRequest places a calendar slot in the planner.
type ScheduleLessonRequest struct {
	Title        string `json:"title" validate:"required"`
	Subject      string `json:"subject"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time"`
	Duration     string `json:"duration"`
	Type         string `json:"type" validate:"required,oneof=lesson assignment"`
	AssignmentID string `json:"assignmentId"`
	LessonPlanID string `json:"lessonPlanId"`
}

// SaveLessonPlanRequest stores a generated lesson plan in the planner.
type SaveLessonPlanRequest struct {
	Topic   string `json:"topic" validate:"required"`
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Content string `json:"content" validate:"required"`
}

// PublishAssignmentRequest pushes a draft assignment to the LMS.
type PublishAssignmentRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

// ScheduleDetails resolves a calendar slot's weak references. Dangling
// references yield nil rather than an error.
type ScheduleDetails struct {
	Lesson     workspace.ScheduledLesson `json:"lesson"`
	Assignment *workspace.Assignment     `json:"assignment"`
	LessonPlan *workspace.LessonPlan     `json:"lessonPlan"`
}
