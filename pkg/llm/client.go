package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	llmDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eduai",
		Subsystem: "llm",
		Name:      "completion_duration_seconds",
		Help:      "Duration of chat-completion requests",
	}, []string{"model"})

	llmFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduai",
		Subsystem: "llm",
		Name:      "completion_failures_total",
		Help:      "Number of chat-completion failures",
	}, []string{"model"})
)

// Config defines configuration options for the completion client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  zerolog.Logger
}

// Client implements Completer against any OpenAI-compatible chat-completion
// endpoint (the hosted Groq API in production).
type Client struct {
	client *openai.Client
	model  string
	tracer trace.Tracer
	logger zerolog.Logger
}

// New builds a completion client using the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("model provider api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		tracer: otel.Tracer("github.com/eduai-labs/eduai-api/pkg/llm"),
		logger: cfg.Logger.With().Str("component", "llm_client").Logger(),
	}, nil
}

// Complete sends the system prompt plus history and returns the next turn.
func (c *Client) Complete(parent context.Context, req Request) (string, error) {
	ctx, span := c.tracer.Start(parent, "llm.complete", trace.WithAttributes(
		attribute.String("model", c.model),
		attribute.Int("history_length", len(req.Messages)),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, message := range req.Messages {
		role := openai.ChatMessageRoleUser
		if message.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: message.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    messages,
	})
	llmDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		llmFailures.WithLabelValues(c.model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from model")
		llmFailures.WithLabelValues(c.model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
