package llm

import "context"

// Message represents a single chat message sent to a completion endpoint.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Client defines the interface for language-model completion endpoints.
type Client interface {
	// Chat sends messages and returns the model's text response. The
	// call blocks until the response arrives or the request times out.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Name returns the client name for logging.
	Name() string
}
