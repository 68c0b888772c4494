package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrGatewayRequired is returned when a vector store gateway is not provided.
	ErrGatewayRequired = errors.New("vector store gateway required")

	// ErrEmbedding indicates that the embedding service failed for a chunk.
	ErrEmbedding = errors.New("embedding failed")
)
