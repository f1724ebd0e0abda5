package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/internal/handler"
	"github.com/eduai-labs/eduai-api/internal/service"
)

type mockDetectService struct {
	lastText string
	response dto.DetectResponse
	err      error
}

func (m *mockDetectService) Analyze(_ context.Context, text string) (dto.DetectResponse, error) {
	m.lastText = text
	if m.err != nil {
		return dto.DetectResponse{}, m.err
	}
	return m.response, nil
}

func newDetectApp(svc service.DetectService) *fiber.App {
	app := fiber.New()
	handler.NewDetectHandler(svc, testLogger()).Register(app.Group("/api"))
	return app
}

func TestDetectHandler_Success(t *testing.T) {
	svc := &mockDetectService{response: dto.DetectResponse{Score: 88, Verdict: "Likely AI-Generated", Confidence: "High"}}
	app := newDetectApp(svc)

	text := strings.Repeat("This paragraph reads suspiciously evenly. ", 3)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/detect", dto.DetectRequest{Text: text}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response dto.DetectResponse
	decodeResponse(t, resp, &response)
	require.Equal(t, 88, response.Score)
	require.Equal(t, "Likely AI-Generated", response.Verdict)
	require.Equal(t, text, svc.lastText)
}

func TestDetectHandler_ShortTextRejected(t *testing.T) {
	svc := &mockDetectService{}
	app := newDetectApp(svc)

	cases := []string{
		"",
		"too short",
		strings.Repeat(" ", 80) + "padded",
	}

	for _, text := range cases {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/detect", dto.DetectRequest{Text: text}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Please provide at least 50 characters of text to analyze.", decodeError(t, resp))
	}

	require.Empty(t, svc.lastText)
}

func TestDetectHandler_ConfigErrorKeepsHint(t *testing.T) {
	app := newDetectApp(&mockDetectService{err: service.ErrDetectorNotConfigured})

	text := strings.Repeat("a", 60)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/detect", dto.DetectRequest{Text: text}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, decodeError(t, resp), "sapling.ai")
}
