package storage

import (
	"context"

	"github.com/poiesic/docchat/core"
)

// VectorStore provides collection-scoped vector persistence and similarity
// search. Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// CreateCollection creates a collection configured for cosine similarity
	// over vectors of the given dimension. Creating a collection that already
	// exists with the same dimension is not an error.
	CreateCollection(ctx context.Context, name string, dimension int) error

	// Upsert writes the given points into the collection, replacing points
	// that share an ID. Returns ErrCollectionNotFound if the collection does
	// not exist.
	Upsert(ctx context.Context, collection string, points []core.EmbeddedPoint) error

	// Count returns the number of points stored in the collection.
	// Returns ErrCollectionNotFound if the collection does not exist.
	Count(ctx context.Context, collection string) (int, error)

	// Search returns up to limit points most similar to vector, ordered by
	// similarity score (highest first).
	// Returns ErrCollectionNotFound if the collection does not exist.
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]*core.ScoredPoint, error)

	// Close closes the store and releases resources.
	Close() error
}
