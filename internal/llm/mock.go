package llm

import (
	"context"
	"sync"
)

// MockReply is a canned reply for the MockProvider.
type MockReply struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records all requests.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	Calls   []Request
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Complete returns the next canned reply or ErrProviderUnavailable if the
// queue is empty.
func (m *MockProvider) Complete(_ context.Context, req Request) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.Err != nil {
		return nil, reply.Err
	}

	return &Reply{
		Text:       reply.Text,
		Usage:      reply.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddReply appends a canned reply to the queue.
func (m *MockProvider) AddReply(reply MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// CallCount returns the number of Complete calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
