// Package ai provides abstractions for the AI services behind the document
// assistant: text embeddings, optical character recognition, and chat
// completions.
//
// The ingestion and search layers depend only on the interfaces defined
// here, never on a concrete backend, so embedding models and LLMs stay
// opaque request/response collaborators.
//
// # Interfaces
//
//   - Embedder: generates vector embeddings from chunk text
//   - Recognizer: extracts text from images via OCR
//   - Answerer: answers questions from retrieved context
//   - AIProvider: aggregates embedder and answerer for one configured host
//
// # Implementation Packages
//
//   - ai/openai: production embedder and answerer over OpenAI-compatible
//     APIs (Ollama, LocalAI, vLLM, ...)
//   - ai/tesseract: production Recognizer backed by the Tesseract engine
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return the interface
// types to enforce abstraction; the mock package returns concrete types so
// tests can inject behavior and assert call counts.
package ai
