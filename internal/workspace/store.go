package workspace

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RubricCriterion is one scoring criterion on a draft assignment.
type RubricCriterion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// Assignment is a teacher-drafted assignment that only exists in the planner
// until it is published to the LMS.
type Assignment struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Subject        string            `json:"subject"`
	Description    string            `json:"description"`
	DueDate        string            `json:"dueDate"`
	TotalPoints    float64           `json:"totalPoints"`
	RubricCriteria []RubricCriterion `json:"rubricCriteria"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ScheduledLesson is a denormalised calendar slot. AssignmentID and
// LessonPlanID are weak references into the other collections; deleting the
// referenced record leaves them dangling.
type ScheduledLesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     string `json:"duration"`
	Type         string `json:"type"`
	AssignmentID string `json:"assignmentId,omitempty"`
	LessonPlanID string `json:"lessonPlanId,omitempty"`
}

// LessonPlan is a generated plan the teacher chose to keep.
type LessonPlan struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Subject   string    `json:"subject"`
	Grade     string    `json:"grade"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store holds the planner collections in process memory. Nothing here
// survives a restart; the collections exist for the lifetime of one session.
type Store struct {
	mu          sync.RWMutex
	assignments map[string]Assignment
	lessons     map[string]ScheduledLesson
	plans       map[string]LessonPlan
	newID       func() string
	now         func() time.Time
}

// NewStore creates an empty planner store.
func NewStore() *Store {
	return &Store{
		assignments: make(map[string]Assignment),
		lessons:     make(map[string]ScheduledLesson),
		plans:       make(map[string]LessonPlan),
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// AddAssignment stores a draft assignment, assigning its identity and
// deriving total points from the rubric criteria.
func (s *Store) AddAssignment(assignment Assignment) Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignment.ID = s.newID()
	assignment.CreatedAt = s.now()

	total := 0.0
	for _, criterion := range assignment.RubricCriteria {
		total += criterion.Points
	}
	assignment.TotalPoints = total

	s.assignments[assignment.ID] = assignment
	return assignment
}

// ListAssignments returns drafts ordered by creation time.
func (s *Store) ListAssignments() []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Assignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		result = append(result, assignment)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// GetAssignment looks up one draft. The second return value reports presence.
func (s *Store) GetAssignment(id string) (Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.assignments[id]
	return assignment, ok
}

// DeleteAssignment removes a draft. Calendar slots referencing it keep their
// dangling id on purpose.
func (s *Store) DeleteAssignment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assignments[id]; !ok {
		return false
	}
	delete(s.assignments, id)
	return true
}

// AddLesson stores a calendar slot.
func (s *Store) AddLesson(lesson ScheduledLesson) ScheduledLesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson.ID = s.newID()
	s.lessons[lesson.ID] = lesson
	return lesson
}

// ListLessons returns calendar slots ordered by date then time.
func (s *Store) ListLessons() []ScheduledLesson {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ScheduledLesson, 0, len(s.lessons))
	for _, lesson := range s.lessons {
		result = append(result, lesson)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result
}

// GetLesson looks up one calendar slot.
func (s *Store) GetLesson(id string) (ScheduledLesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lesson, ok := s.lessons[id]
	return lesson, ok
}

// DeleteLesson removes a calendar slot.
func (s *Store) DeleteLesson(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lessons[id]; !ok {
		return false
	}
	delete(s.lessons, id)
	return true
}

// AddPlan stores a saved lesson plan.
func (s *Store) AddPlan(plan LessonPlan) LessonPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan.ID = s.newID()
	plan.CreatedAt = s.now()
	s.plans[plan.ID] = plan
	return plan
}

// ListPlans returns saved plans ordered by creation time.
func (s *Store) ListPlans() []LessonPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]LessonPlan, 0, len(s.plans))
	for _, plan := range s.plans {
		result = append(result, plan)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// GetPlan looks up one saved plan.
func (s *Store) GetPlan(id string) (LessonPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	return plan, ok
}

// DeletePlan removes a saved plan.
func (s *Store) DeletePlan(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return false
	}
	delete(s.plans, id)
	return true
}
