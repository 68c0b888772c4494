package badger

import "github.com/poiesic/docchat/storage"

// NewMemoryStore creates an in-memory vector store for testing.
// Caller must close the store when done.
func NewMemoryStore() (storage.VectorStore, error) {
	return Open("", true)
}
