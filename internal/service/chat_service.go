package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/pkg/llm"
)

const chatSystemPrompt = `You are EduAI, an AI teaching assistant designed to help educators. You are knowledgeable, supportive, and practical.

Your capabilities include:
- Providing teaching strategies and classroom management tips
- Suggesting lesson ideas and activities
- Offering advice on student engagement
- Helping with curriculum planning
- Answering questions about educational best practices

Always be encouraging and provide actionable advice. Keep responses concise but helpful.
If asked about grading or lesson plans, mention that those features are available in the dedicated tabs.`

// ChatService answers teacher questions conversationally.
type ChatService interface {
	Respond(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error)
}

type chatService struct {
	completer llm.Completer
	logger    zerolog.Logger
}

// NewChatService constructs the assistant chat service. A nil completer means
// the model integration is unconfigured.
func NewChatService(completer llm.Completer, logger zerolog.Logger) ChatService {
	return &chatService{
		completer: completer,
		logger:    logger.With().Str("component", "chat_service").Logger(),
	}
}

func (s *chatService) Respond(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	if s.completer == nil {
		return dto.ChatResponse{}, ErrModelNotConfigured
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, message := range req.Messages {
		messages = append(messages, llm.Message{Role: message.Role, Content: message.Content})
	}

	content, err := s.completer.Complete(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return dto.ChatResponse{}, err
	}

	if content == "" {
		content = "I apologize, I couldn't generate a response."
	}

	return dto.ChatResponse{Message: content}, nil
}
