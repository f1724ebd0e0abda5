package llm

import "context"

// Role values accepted in a chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one chat-completion call. Each facade supplies its own
// system prompt and sampling knobs.
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Completer describes a model capable of producing the next chat turn.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
