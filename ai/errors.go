package ai

import "errors"

// ErrVectorSize indicates an embedding whose dimension does not match the
// configured VectorSize. The vector store provisions collections with that
// dimension, so mismatched vectors are surfaced at embedding time instead
// of failing later on upsert.
var ErrVectorSize = errors.New("embedding dimension mismatch")
