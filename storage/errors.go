package storage

import "errors"

var (
	// ErrConnection indicates that the store could not be reached.
	ErrConnection = errors.New("vector store unreachable")

	// ErrCollectionNotFound indicates that the requested collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrInvalidDimension indicates a vector dimension mismatch or a
	// non-positive collection dimension.
	ErrInvalidDimension = errors.New("invalid vector dimension")
)
