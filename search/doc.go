// Package search answers questions over a user's ingested documents.
//
// The Searcher embeds the question, pulls the most similar chunks out of the
// user's vector collection, and renders them into a prompt for the language
// model. Retrieval and answering are exposed separately so callers can show
// raw hits without paying for a completion.
package search
