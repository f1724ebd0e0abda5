package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/internal/workspace"
)

func TestAddAssignmentDerivesTotalPoints(t *testing.T) {
	store := workspace.NewStore()

	created := store.AddAssignment(workspace.Assignment{
		Title: "Persuasive Essay",
		RubricCriteria: []workspace.RubricCriterion{
			{Name: "Thesis", Points: 30},
			{Name: "Evidence", Points: 45},
			{Name: "Mechanics", Points: 25},
		},
	})

	require.NotEmpty(t, created.ID)
	require.Equal(t, 100.0, created.TotalPoints)
	require.False(t, created.CreatedAt.IsZero())

	fetched, ok := store.GetAssignment(created.ID)
	require.True(t, ok)
	require.Equal(t, created, fetched)
}

func TestIDsAreUnique(t *testing.T) {
	store := workspace.NewStore()

	first := store.AddAssignment(workspace.Assignment{Title: "A"})
	second := store.AddAssignment(workspace.Assignment{Title: "B"})
	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.ListAssignments(), 2)
}

func TestDeleteLeavesDanglingReference(t *testing.T) {
	store := workspace.NewStore()

	assignment := store.AddAssignment(workspace.Assignment{Title: "Lab Report"})
	lesson := store.AddLesson(workspace.ScheduledLesson{
		Title:        "Lab Report due",
		Date:         "2026-09-14",
		Type:         "assignment",
		AssignmentID: assignment.ID,
	})

	require.True(t, store.DeleteAssignment(assignment.ID))

	kept, ok := store.GetLesson(lesson.ID)
	require.True(t, ok)
	require.Equal(t, assignment.ID, kept.AssignmentID)

	_, ok = store.GetAssignment(kept.AssignmentID)
	require.False(t, ok)
}

func TestDeleteMissingReturnsFalse(t *testing.T) {
	store := workspace.NewStore()

	require.False(t, store.DeleteAssignment("missing"))
	require.False(t, store.DeleteLesson("missing"))
	require.False(t, store.DeletePlan("missing"))
}

func TestLessonsSortedByDateThenTime(t *testing.T) {
	store := workspace.NewStore()

	store.AddLesson(workspace.ScheduledLesson{Title: "later", Date: "2026-09-15", Time: "13:00", Type: "lesson"})
	store.AddLesson(workspace.ScheduledLesson{Title: "first", Date: "2026-09-14", Time: "09:00", Type: "lesson"})
	store.AddLesson(workspace.ScheduledLesson{Title: "second", Date: "2026-09-15", Time: "08:00", Type: "lesson"})

	lessons := store.ListLessons()
	require.Equal(t, []string{"first", "second", "later"}, []string{lessons[0].Title, lessons[1].Title, lessons[2].Title})
}
