package llm

import (
	"context"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// MockResponse is a canned response for the MockCompleter.
type MockResponse struct {
	Content string
	Err     error
}

// MockCompleter is a deterministic Completer for testing. It returns canned
// responses in FIFO order and records all requests.
type MockCompleter struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockCompleter creates a MockCompleter with the given canned responses.
func NewMockCompleter(responses ...MockResponse) *MockCompleter {
	return &MockCompleter{responses: responses}
}

// Complete returns the next canned response, or *ErrUnavailable when the
// queue is empty.
func (m *MockCompleter) Complete(_ context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Result{
		Content: resp.Content,
		Raw: openai.ChatCompletionResponse{
			Model: "mock",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: resp.Content,
				}},
			},
		},
	}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockCompleter) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Complete calls made.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
