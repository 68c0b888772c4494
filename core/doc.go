// Package core defines the domain model for the document ingestion and
// retrieval system: documents, chunks, embedded points, per-user collection
// naming, and the shared error taxonomy.
//
// Identity rules:
//
//   - A document is identified by (user_id, doc_id, filename) and exists
//     only for the duration of one ingestion call.
//   - A chunk is identified within its document by a 0-based sequence
//     position (ChunkID).
//   - A point id is derived deterministically from (doc_id, chunk_id) via
//     PointID, so re-ingesting a document replaces its own points and
//     concurrent batches for one user cannot collide.
//   - Each user owns exactly one collection, named by CollectionName.
package core
