package lms_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/pkg/lms"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *lms.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := lms.New(lms.Config{
		BaseURL: server.URL,
		Token:   "token-123",
		Logger:  zerolog.New(io.Discard),
	})
	require.NoError(t, err)
	return client
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := lms.New(lms.Config{BaseURL: "https://lms.example.com"})
	require.Error(t, err)

	_, err = lms.New(lms.Config{Token: "token"})
	require.Error(t, err)
}

func TestListCourses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/courses", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.Equal(t, "teacher", r.URL.Query().Get("enrollment_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":101,"name":"Biology","course_code":"BIO-7"}]`))
	})

	courses, err := client.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, int64(101), courses[0].ID)
	require.Equal(t, "BIO-7", courses[0].CourseCode)
}

func TestListAssignmentsIncludesRubric(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/courses/101/assignments", r.URL.Path)
		require.Equal(t, "rubric", r.URL.Query().Get("include[]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":5,"name":"Essay","points_possible":100,"rubric":[{"id":"c1","description":"Thesis","points":40}]}]`))
	})

	assignments, err := client.ListAssignments(context.Background(), "101", true)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Len(t, assignments[0].Rubric, 1)
	require.Equal(t, 40.0, assignments[0].Rubric[0].Points)
}

func TestUpstreamErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))
	})

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)

	var apiErr *lms.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "Invalid access token")
	require.Contains(t, apiErr.Error(), "401")
}

func TestUpdateSubmissionSendsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/courses/101/assignments/5/submissions/42", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), `"posted_grade":"95"`)
		require.Contains(t, string(body), `"text_comment":"Nice work"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"grade":"95"}`))
	})

	payload := lms.GradePayload{
		Submission: lms.SubmissionField{PostedGrade: "95"},
		Comment:    &lms.CommentField{TextComment: "Nice work"},
	}
	result, err := client.UpdateSubmission(context.Background(), "101", "5", "42", payload)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":7,"grade":"95"}`, string(result))
}

func TestCreateRubricPostsAssociation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/courses/101/rubrics", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), `"association_type":"Assignment"`)
		require.Contains(t, string(body), `"use_for_grading":true`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	payload := lms.RubricPayload{
		Rubric: lms.RubricFields{Title: "Essay Rubric", PointsPossible: 100},
		RubricAssociation: lms.RubricAssociation{
			AssociationID:   5,
			AssociationType: "Assignment",
			UseForGrading:   true,
			Purpose:         "grading",
		},
	}
	require.NoError(t, client.CreateRubric(context.Background(), "101", payload))
}
