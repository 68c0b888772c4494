// Package mock provides test double implementations of the AI service
// interfaces: ai.Embedder, ai.Recognizer, ai.Answerer, and ai.AIProvider.
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("embedding service down")
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: returns deterministic 384-dim vectors based on text hash
//   - MockRecognizer: returns a fixed text for every image
//   - MockAnswerer: echoes the prompt back
//   - MockProvider: aggregates mock embedder and answerer
package mock
