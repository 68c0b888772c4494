// Package qdrant implements storage.VectorStore against a Qdrant server's
// REST API using per-user collections with cosine distance.
package qdrant
