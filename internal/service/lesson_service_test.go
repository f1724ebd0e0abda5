package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/internal/dto"
)

func TestLessonUnconfigured(t *testing.T) {
	svc := NewLessonService(nil, testLogger())

	_, err := svc.Generate(context.Background(), dto.LessonRequest{Topic: "Photosynthesis", Grade: "7th"})
	require.ErrorIs(t, err, ErrModelNotConfigured)
}

func TestLessonAppliesDefaults(t *testing.T) {
	completer := &fakeCompleter{response: "# Photosynthesis Lesson"}
	svc := NewLessonService(completer, testLogger())

	response, err := svc.Generate(context.Background(), dto.LessonRequest{
		Topic: "Photosynthesis",
		Grade: "7th",
	})
	require.NoError(t, err)
	require.Equal(t, "# Photosynthesis Lesson", response.LessonPlan)

	prompt := completer.lastReq.Messages[0].Content
	require.Contains(t, prompt, "Topic: Photosynthesis")
	require.Contains(t, prompt, "Subject: General")
	require.Contains(t, prompt, "Duration: 45-50 minutes")
	require.Contains(t, prompt, "appropriate for 7th students")
	require.Equal(t, 1500, completer.lastReq.MaxTokens)
	require.Equal(t, float32(0.7), completer.lastReq.Temperature)
}

func TestLessonKeepsExplicitFields(t *testing.T) {
	completer := &fakeCompleter{response: "plan"}
	svc := NewLessonService(completer, testLogger())

	_, err := svc.Generate(context.Background(), dto.LessonRequest{
		Topic:    "Fractions",
		Grade:    "4th",
		Subject:  "Math",
		Duration: "30 minutes",
	})
	require.NoError(t, err)

	prompt := completer.lastReq.Messages[0].Content
	require.Contains(t, prompt, "Subject: Math")
	require.Contains(t, prompt, "Duration: 30 minutes")
}
