// Package chunker splits extracted document text into overlapping
// fixed-size windows ahead of embedding. Windows are measured in runes so
// multi-byte text chunks the same way regardless of encoding weight.
package chunker
