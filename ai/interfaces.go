package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Recognizer extracts text from raster images via optical character
// recognition. Implementations must be safe for concurrent use.
type Recognizer interface {
	// Recognize runs OCR over an encoded image held in memory.
	// Whitespace-only output means the image contains no recognizable text;
	// that is not an error.
	Recognize(ctx context.Context, image []byte) (string, error)

	// RecognizeFile runs OCR over an image file on disk.
	RecognizeFile(ctx context.Context, path string) (string, error)
}

// Answerer produces a natural-language completion for a fully rendered
// prompt. Implementations must be thread-safe for concurrent use.
type Answerer interface {
	// Answer generates a completion for the prompt.
	// Returns an error if the language model call fails.
	Answer(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Answerer instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Answerer returns the chat completion service.
	// The returned Answerer is safe for concurrent use.
	Answerer() Answerer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
