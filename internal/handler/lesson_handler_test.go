package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/handler"
	"github.com/eduai-labs/eduai-api/internal/service"
)

type mockLessonService struct {
	lastReq  dto.LessonRequest
	response dto.LessonResponse
	err      error
}

func (m *mockLessonService) Generate(_ context.Context, req dto.LessonRequest) (dto.LessonResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return dto.LessonResponse{}, m.err
	}
	return m.response, nil
}

func newLessonApp(svc service.LessonService) *fiber.App {
	app := fiber.New()
	handler.NewLessonHandler(svc, testValidator(), testLogger()).Register(app.Group("/api"))
	return app
}

func TestLessonHandler_Success(t *testing.T) {
	svc := &mockLessonService{response: dto.LessonResponse{LessonPlan: "# Fractions"}}
	app := newLessonApp(svc)

	payload := dto.LessonRequest{Topic: "Fractions", Grade: "4th", Subject: "Math"}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/lesson", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response dto.LessonResponse
	decodeResponse(t, resp, &response)
	require.Equal(t, "# Fractions", response.LessonPlan)
	require.Equal(t, "Math", svc.lastReq.Subject)
}

func TestLessonHandler_MissingTopicOrGrade(t *testing.T) {
	cases := []dto.LessonRequest{
		{Grade: "4th"},
		{Topic: "Fractions"},
		{},
	}

	for _, payload := range cases {
		app := newLessonApp(&mockLessonService{})

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/lesson", payload))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "topic and grade required", decodeError(t, resp))
	}
}
