package mock

import "context"

// MockRecognizer is a test double for ai.Recognizer.
// It allows custom behavior injection via function fields.
type MockRecognizer struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, returns Text.
	RecognizeFunc func(ctx context.Context, image []byte) (string, error)

	// RecognizeFileFunc is called by RecognizeFile if set.
	// If nil, returns Text.
	RecognizeFileFunc func(ctx context.Context, path string) (string, error)

	// Text is the default recognition result when no function is injected.
	Text string

	callCount int
}

// NewMockRecognizer creates a mock recognizer that returns the given text
// for every image. Note: Returns concrete type to allow test assertions.
func NewMockRecognizer(text string) *MockRecognizer {
	return &MockRecognizer{Text: text}
}

// Recognize returns the injected behavior's result, or Text.
func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, image)
	}
	return m.Text, nil
}

// RecognizeFile returns the injected behavior's result, or Text.
func (m *MockRecognizer) RecognizeFile(ctx context.Context, path string) (string, error) {
	m.callCount++

	if m.RecognizeFileFunc != nil {
		return m.RecognizeFileFunc(ctx, path)
	}
	return m.Text, nil
}

// CallCount returns the number of times any method was called.
func (m *MockRecognizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockRecognizer) Reset() {
	m.callCount = 0
	m.RecognizeFunc = nil
	m.RecognizeFileFunc = nil
}
