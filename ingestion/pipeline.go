package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/docchat/chunker"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/extract"
)

// extractor is the slice of extract.Dispatcher the pipeline depends on.
type extractor interface {
	Extract(ctx context.Context, path, filename string) (string, error)
}

// Pipeline orchestrates the ingestion of one document: extraction, chunking,
// metadata tagging, and persistence through the vector store gateway.
type Pipeline struct {
	extractor extractor
	splitter  *chunker.Splitter
	gateway   *Gateway
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithSplitter replaces the default chunker configuration.
func WithSplitter(splitter *chunker.Splitter) Option {
	return func(p *Pipeline) error {
		if splitter == nil {
			return fmt.Errorf("nil splitter")
		}
		p.splitter = splitter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(dispatcher *extract.Dispatcher, gateway *Gateway, opts ...Option) (*Pipeline, error) {
	if dispatcher == nil {
		return nil, ErrExtractorRequired
	}
	if gateway == nil {
		return nil, ErrGatewayRequired
	}

	p := &Pipeline{
		extractor: dispatcher,
		splitter:  chunker.NewDefault(),
		gateway:   gateway,
		logger:    slog.Default().With("component", "ingestion-pipeline"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Request identifies one document to ingest.
type Request struct {
	// Path is the location of the file's bytes on disk, which may be a
	// staging path that differs from the original filename.
	Path string
	// Filename is the document's original name; its extension selects the
	// extractor variant.
	Filename string
	// DocID identifies the document across the system.
	DocID string
	// UserID selects the collection the document's chunks are written to.
	UserID string
}

// Ingest extracts, chunks, and persists one document. It returns the chunk
// sequence alongside the persistence report. Extraction failure or an
// unreachable vector store is fatal; per-chunk embedding failures are
// reported, not raised.
func (p *Pipeline) Ingest(ctx context.Context, req Request) ([]*core.Chunk, *core.UpsertReport, error) {
	if _, err := os.Stat(req.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", core.ErrNotFound, req.Path)
		}
		return nil, nil, err
	}

	text, err := p.extractor.Extract(ctx, req.Path, req.Filename)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting %s: %w", req.Filename, err)
	}

	pieces := p.splitter.Split(text)
	chunks := make([]*core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &core.Chunk{
			DocID:    req.DocID,
			Filename: req.Filename,
			ChunkID:  i,
			Text:     piece,
		}
	}
	p.logger.Debug("chunked document",
		"doc_id", req.DocID, "filename", req.Filename, "chunks", len(chunks))

	report, err := p.gateway.UpsertChunks(ctx, req.UserID, chunks)
	if err != nil {
		return nil, nil, fmt.Errorf("persisting %s: %w", req.Filename, err)
	}

	p.logger.Info("ingested document",
		"doc_id", req.DocID, "filename", req.Filename,
		"chunks", len(chunks), "persisted", report.Persisted())
	return chunks, report, nil
}

// Result pairs one request with its ingestion outcome.
type Result struct {
	Request Request
	Chunks  []*core.Chunk
	Report  *core.UpsertReport
	Err     error
}

// IngestAll ingests the requests sequentially. One document's failure does
// not prevent the others from being attempted; each result carries its own
// error.
func (p *Pipeline) IngestAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		chunks, report, err := p.Ingest(ctx, req)
		results[i] = Result{Request: req, Chunks: chunks, Report: report, Err: err}
		if err != nil {
			p.logger.Error("document ingestion failed",
				"doc_id", req.DocID, "filename", req.Filename, "err", err)
		}
	}
	return results
}
