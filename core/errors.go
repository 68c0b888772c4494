package core

import "errors"

// Domain errors for the ingestion path
var (
	// ErrNotFound indicates the input file does not exist.
	ErrNotFound = errors.New("input file not found")

	// ErrEmptyInput indicates a zero-length input file.
	ErrEmptyInput = errors.New("input file is empty")

	// ErrDecode indicates the file could not be parsed by any strategy of
	// the selected extractor variant.
	ErrDecode = errors.New("could not decode input")

	// ErrUnsupportedFormat indicates no extractor variant applies to the file.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyDocID indicates the DocID field is empty.
	ErrEmptyDocID = errors.New("doc id cannot be empty")

	// ErrNegativeChunkID indicates a chunk sequence position below zero.
	ErrNegativeChunkID = errors.New("chunk id cannot be negative")
)
