// Package storage provides the vector storage abstraction layer for docchat.
//
// This package defines the VectorStore interface that decouples storage
// implementation from the ingestion and search logic. It allows for different
// backends (a Qdrant server, embedded BadgerDB, etc.) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Backend packages follow a strict "return interface" pattern for public
// constructors to enforce abstraction:
//
//	store, err := qdrant.New(cfg)       // returns storage.VectorStore
//	store, err := badger.Open(path)     // returns storage.VectorStore
//
// # Collections
//
// Every user's documents live in their own collection, named by
// core.CollectionName. Collections are created lazily by the ingestion layer
// and configured for cosine similarity.
//
// # Thread Safety
//
// All VectorStore implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
