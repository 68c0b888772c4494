// Package badger implements storage.VectorStore on an embedded BadgerDB
// database, for single-machine deployments that do not run a Qdrant server.
//
// Collections map to key prefixes. Similarity search is a linear scan over
// the collection's points with cosine scoring, which is adequate for the
// per-user collection sizes the ingestion layer produces.
package badger
