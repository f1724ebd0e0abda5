package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/pkg/detector"
	"github.com/eduai-labs/eduai-api/pkg/llm"
	"github.com/eduai-labs/eduai-api/pkg/lms"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fakeCompleter records the last request and replays canned output.
type fakeCompleter struct {
	response string
	err      error
	lastReq  llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeDetector replays a canned detection result.
type fakeDetector struct {
	result   detector.Result
	err      error
	lastText string
}

func (f *fakeDetector) Detect(_ context.Context, text string) (detector.Result, error) {
	f.lastText = text
	if f.err != nil {
		return detector.Result{}, f.err
	}
	return f.result, nil
}

// fakeLMS serves per-course canned data and records write payloads.
type fakeLMS struct {
	courses     []lms.Course
	assignments map[string][]lms.Assignment
	submissions map[string][]lms.Submission
	enrollments map[string][]lms.Enrollment
	students    map[string][]lms.User
	assignment  lms.Assignment

	courseErr      error
	enrollmentErrs map[string]error
	submissionErrs map[string]error

	created        lms.Assignment
	createErr      error
	createdPayload lms.AssignmentPayload
	rubricPayload  *lms.RubricPayload
	rubricErr      error
	gradePayload   lms.GradePayload
}

func (f *fakeLMS) ListCourses(context.Context) ([]lms.Course, error) {
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return f.courses, nil
}

func (f *fakeLMS) ListAssignments(_ context.Context, courseID string, _ bool) ([]lms.Assignment, error) {
	return f.assignments[courseID], nil
}

func (f *fakeLMS) ListSubmissions(_ context.Context, courseID, assignmentID string) ([]lms.Submission, error) {
	return f.submissions[courseID+"/"+assignmentID], nil
}

func (f *fakeLMS) GetAssignment(_ context.Context, _, _ string) (lms.Assignment, error) {
	return f.assignment, nil
}

func (f *fakeLMS) ListStudents(_ context.Context, courseID string) ([]lms.User, error) {
	return f.students[courseID], nil
}

func (f *fakeLMS) ListEnrollments(_ context.Context, courseID string) ([]lms.Enrollment, error) {
	if err := f.enrollmentErrs[courseID]; err != nil {
		return nil, err
	}
	return f.enrollments[courseID], nil
}

func (f *fakeLMS) ListRecentSubmissions(_ context.Context, courseID, assignmentID string) ([]lms.Submission, error) {
	if err := f.submissionErrs[courseID+"/"+assignmentID]; err != nil {
		return nil, err
	}
	return f.submissions[courseID+"/"+assignmentID], nil
}

func (f *fakeLMS) UpdateSubmission(_ context.Context, _, _, _ string, payload lms.GradePayload) (json.RawMessage, error) {
	f.gradePayload = payload
	return json.RawMessage(`{"id": 1}`), nil
}

func (f *fakeLMS) CreateAssignment(_ context.Context, _ string, payload lms.AssignmentPayload) (lms.Assignment, error) {
	f.createdPayload = payload
	if f.createErr != nil {
		return lms.Assignment{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeLMS) CreateRubric(_ context.Context, _ string, payload lms.RubricPayload) error {
	f.rubricPayload = &payload
	return f.rubricErr
}
