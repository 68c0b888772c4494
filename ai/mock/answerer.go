package mock

import "context"

// MockAnswerer is a test double for ai.Answerer.
// It allows custom behavior injection via function fields.
type MockAnswerer struct {
	// AnswerFunc is called by Answer if set.
	// If nil, echoes the prompt back.
	AnswerFunc func(ctx context.Context, prompt string) (string, error)

	callCount  int
	lastPrompt string
}

// NewMockAnswerer creates a mock answerer with default echo behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnswerer() *MockAnswerer {
	return &MockAnswerer{}
}

// Answer returns the injected behavior's result, or echoes the prompt.
func (m *MockAnswerer) Answer(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.lastPrompt = prompt

	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, prompt)
	}
	return prompt, nil
}

// CallCount returns the number of times Answer was called.
func (m *MockAnswerer) CallCount() int {
	return m.callCount
}

// LastPrompt returns the prompt from the most recent Answer call.
func (m *MockAnswerer) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears the call count, recorded prompt, and injected behavior.
func (m *MockAnswerer) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.AnswerFunc = nil
}
