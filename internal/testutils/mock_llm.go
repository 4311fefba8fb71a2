// Package testutils provides shared test doubles for the oracle and
// transport layers.
package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentmatch/talentmatch/internal/ports"
)

// MockLLMClient implements ports.LLMClient with a scripted response
// queue. Tests enqueue raw completion texts (or errors) in the order
// the code under test will request them; every prompt and option map
// is recorded for assertions.
type MockLLMClient struct {
	mu sync.Mutex

	model   string
	queue   []scripted
	Prompts []string
	Options []map[string]any
}

type scripted struct {
	text string
	err  error
}

// NewMockLLMClient creates an empty mock; enqueue responses before use.
func NewMockLLMClient(model string) *MockLLMClient {
	return &MockLLMClient{model: model}
}

// EnqueueResponse appends a successful completion to the script.
func (m *MockLLMClient) EnqueueResponse(text string) *MockLLMClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, scripted{text: text})
	return m
}

// EnqueueError appends a failing completion to the script.
func (m *MockLLMClient) EnqueueError(err error) *MockLLMClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, scripted{err: err})
	return m
}

// Complete pops the next scripted outcome. Running past the script is a
// test bug and returns an error describing the overrun.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Options = append(m.Options, options)

	if len(m.queue) == 0 {
		return "", fmt.Errorf("mock llm: no scripted response for request %d", len(m.Prompts))
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next.text, next.err
}

// EstimateTokens approximates four characters per token.
func (m *MockLLMClient) EstimateTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens, nil
}

// GetModel returns the mock model identifier.
func (m *MockLLMClient) GetModel() string { return m.model }

// Calls reports how many completions were requested.
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

var _ ports.LLMClient = (*MockLLMClient)(nil)
