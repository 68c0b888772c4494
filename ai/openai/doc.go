// Package openai implements the ai service interfaces over OpenAI-compatible
// HTTP APIs. It targets local OpenAI-compatible servers (Ollama, LocalAI,
// vLLM) as well as hosted endpoints; authentication defaults to a dummy
// token for local services.
//
// The embedding model configured here must produce vectors of the dimension
// declared in ai.Config.VectorSize, since collections are provisioned with
// that dimension at first ingestion.
package openai
