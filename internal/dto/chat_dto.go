package dto

// ChatMessage is one prior turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the body for POST /api/chat. The caller resupplies the full
// history on every turn; nothing is stored server-side.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// ChatResponse carries the assistant's next turn.
type ChatResponse struct {
	Message string `json:"message"`
}
