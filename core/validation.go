package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - DocID must not be empty
//   - ChunkID must not be negative
//
// NOT validated:
//   - Text (empty chunks are legal; the gateway skips them at upsert time)
//   - Filename (informational only)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.DocID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocID)
	}

	if chunk.ChunkID < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkID)
	}

	return nil
}
