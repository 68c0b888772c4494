package core

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// DocumentKind classifies a document by the extraction strategy it needs.
type DocumentKind int

const (
	// KindUnknown means no extractor variant is known for the extension.
	KindUnknown DocumentKind = iota
	// KindText represents plain-text formats read directly from disk.
	KindText
	// KindImage represents raster formats processed with OCR.
	KindImage
	// KindPDF represents PDF documents processed page by page.
	KindPDF
)

// kindByExtension maps lowercase file extensions to document kinds.
var kindByExtension = map[string]DocumentKind{
	".txt":  KindText,
	".md":   KindText,
	".csv":  KindText,
	".json": KindText,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".bmp":  KindImage,
	".gif":  KindImage,
	".pdf":  KindPDF,
}

// KindForFilename determines the document kind from the filename's extension.
// Returns KindUnknown for extensions without a dedicated extractor variant.
func KindForFilename(filename string) DocumentKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindUnknown
}

// String returns a human-readable name for the kind.
func (k DocumentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Document identifies one uploaded file for the duration of an ingestion
// call. It is transient; persistence of document records is owned by the
// caller, not by this core.
type Document struct {
	UserID   string
	DocID    string
	Filename string
	Path     string
	Kind     DocumentKind
}

// Chunk is one contiguous window of a document's extracted text.
// ChunkID is the 0-based sequence position within the document.
type Chunk struct {
	DocID    string
	Filename string
	ChunkID  int
	Text     string
}

// OriginalID returns the semantic (doc_id, chunk_id) pairing carried in
// point payloads for traceability.
func (c *Chunk) OriginalID() string {
	return fmt.Sprintf("%s_%d", c.DocID, c.ChunkID)
}

// PointPayload is the metadata stored alongside a vector in the store.
type PointPayload struct {
	DocID      string `json:"doc_id"`
	Filename   string `json:"filename"`
	ChunkID    int    `json:"chunk_id"`
	Text       string `json:"text"`
	OriginalID string `json:"original_id"`
}

// EmbeddedPoint is a chunk embedding ready for upsert into a collection.
type EmbeddedPoint struct {
	ID      uint64       `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload PointPayload `json:"payload"`
}

// ScoredPoint is a retrieval hit with its similarity score.
type ScoredPoint struct {
	Point *EmbeddedPoint
	Score float32
}

// PointID generates a stable point identifier from the (doc_id, chunk_id)
// pairing using BLAKE2b hashing. Re-ingesting the same document overwrites
// its previous points instead of colliding with other documents.
func PointID(docID string, chunkID int) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	fmt.Fprintf(h, "%s:%d", docID, chunkID)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// CollectionName returns the per-user collection name.
// One collection per user holds all of that user's points.
func CollectionName(userID string) string {
	return "user_" + userID + "_docs"
}

// ChunkStatus records the outcome of one chunk within an upsert batch.
type ChunkStatus int

const (
	// ChunkPersisted means the chunk was embedded and written to the store.
	ChunkPersisted ChunkStatus = iota + 1
	// ChunkSkipped means the chunk was left out of the batch; the Reason
	// field of the ChunkResult says why.
	ChunkSkipped
)

// ChunkResult is the per-chunk entry of an UpsertReport.
type ChunkResult struct {
	ChunkID int
	Status  ChunkStatus
	Reason  string
}

// UpsertReport describes what happened to each chunk of an upsert batch,
// so callers can distinguish full, partial, and zero persistence without
// parsing logs.
type UpsertReport struct {
	Collection string
	Results    []ChunkResult
}

// Persisted returns the number of chunks written to the store.
func (r *UpsertReport) Persisted() int {
	var n int
	for _, res := range r.Results {
		if res.Status == ChunkPersisted {
			n++
		}
	}
	return n
}

// Skipped returns the number of chunks left out of the batch.
func (r *UpsertReport) Skipped() int {
	var n int
	for _, res := range r.Results {
		if res.Status == ChunkSkipped {
			n++
		}
	}
	return n
}
