package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name:  "valid chunk",
			chunk: &Chunk{DocID: "doc-1", Filename: "a.txt", ChunkID: 0, Text: "hello"},
		},
		{
			name:  "empty text is valid",
			chunk: &Chunk{DocID: "doc-1", Filename: "a.txt", ChunkID: 1},
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "empty doc id",
			chunk:   &Chunk{ChunkID: 0, Text: "hello"},
			wantErr: ErrEmptyDocID,
		},
		{
			name:    "negative chunk id",
			chunk:   &Chunk{DocID: "doc-1", ChunkID: -1, Text: "hello"},
			wantErr: ErrNegativeChunkID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidChunk)
		})
	}
}
