// Package ingestion turns uploaded documents into embedded points in a
// per-user vector collection.
//
// The Pipeline orchestrates one document's journey: the extract.Dispatcher
// produces raw text, the chunker splits it into overlapping windows, and the
// Gateway embeds the chunks as a batch and writes them into the user's
// collection.
//
// Failure handling is deliberately asymmetric. Whole-document failures
// (unreadable file, unreachable store) surface as errors from Ingest.
// Per-chunk failures (empty text, a failed embedding call) are recorded as
// skipped entries in the core.UpsertReport and never abort the batch, so a
// partially degraded document still becomes searchable.
package ingestion
