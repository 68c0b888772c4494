package search

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoDocuments is returned when the user has no ingested documents to
	// search against.
	ErrNoDocuments = errors.New("no documents ingested for user")

	// ErrEmptyQuery is returned when the query is empty or whitespace-only.
	ErrEmptyQuery = errors.New("empty query")
)
