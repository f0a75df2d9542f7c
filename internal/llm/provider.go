// Package llm abstracts the chat model behind the tutor. Providers speak
// plain text; retry and event-logging decorators wrap every concrete
// implementation.
package llm

import "context"

// Provider is the chat completion abstraction the tutor talks to.
type Provider interface {
	// Complete sends the conversation to the model and returns its reply.
	Complete(ctx context.Context, req Request) (*Reply, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one chat completion call.
type Request struct {
	// System sets the persona and constraints for the model.
	System string

	// Messages is the conversation so far, oldest first. The final entry
	// is the learner's latest message.
	Messages []Message

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Tutor chat runs warm.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reply holds the model's output.
type Reply struct {
	// Text is the model's reply.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
