package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduai-labs/eduai-api/internal/dto"
)

func TestChatUnconfigured(t *testing.T) {
	svc := NewChatService(nil, testLogger())

	_, err := svc.Respond(context.Background(), dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
	})
	require.ErrorIs(t, err, ErrModelNotConfigured)
}

func TestChatForwardsHistory(t *testing.T) {
	completer := &fakeCompleter{response: "Try a think-pair-share activity."}
	svc := NewChatService(completer, testLogger())

	response, err := svc.Respond(context.Background(), dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Content: "How do I engage quiet students?"},
			{Role: "assistant", Content: "A few ideas..."},
			{Role: "user", Content: "Something low-prep please"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Try a think-pair-share activity.", response.Message)

	require.Len(t, completer.lastReq.Messages, 3)
	require.Equal(t, "assistant", completer.lastReq.Messages[1].Role)
	require.Contains(t, completer.lastReq.System, "EduAI")
	require.Equal(t, 500, completer.lastReq.MaxTokens)
	require.Equal(t, float32(0.7), completer.lastReq.Temperature)
}

func TestChatEmptyCompletionUsesApology(t *testing.T) {
	completer := &fakeCompleter{response: ""}
	svc := NewChatService(completer, testLogger())

	response, err := svc.Respond(context.Background(), dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Equal(t, "I apologize, I couldn't generate a response.", response.Message)
}
