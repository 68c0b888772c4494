package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
)

// DefaultDimension is the embedding dimension collections are created with.
const DefaultDimension = 384

// Gateway mediates between chunk batches and the vector store. It owns the
// lifecycle of per-user collections and is the sole writer of their points.
type Gateway struct {
	store     storage.VectorStore
	embedder  ai.Embedder
	dimension int
	logger    *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway) error

// WithDimension overrides the embedding dimension used when creating
// collections. Default is DefaultDimension.
func WithDimension(dimension int) GatewayOption {
	return func(g *Gateway) error {
		if dimension <= 0 {
			return fmt.Errorf("%w: %d", storage.ErrInvalidDimension, dimension)
		}
		g.dimension = dimension
		return nil
	}
}

// WithGatewayLogger sets a custom logger.
// Default is slog.Default().
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGateway creates a vector store gateway.
func NewGateway(store storage.VectorStore, embedder ai.Embedder, opts ...GatewayOption) (*Gateway, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	g := &Gateway{
		store:     store,
		embedder:  embedder,
		dimension: DefaultDimension,
		logger:    slog.Default().With("component", "vector-gateway"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// EnsureCollection creates the user's collection if it does not exist and
// returns its name. Calling it for an existing collection is a no-op.
func (g *Gateway) EnsureCollection(ctx context.Context, userID string) (string, error) {
	name := core.CollectionName(userID)

	exists, err := g.store.CollectionExists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		return name, nil
	}

	if err := g.store.CreateCollection(ctx, name, g.dimension); err != nil {
		return "", err
	}
	g.logger.Info("created collection", "collection", name, "dimension", g.dimension)
	return name, nil
}

// UpsertChunks embeds and persists a batch of chunks into the user's
// collection. Embeddable chunks go to the embedder as one batch; if that
// call fails, each chunk is retried individually so one bad chunk cannot
// take down its neighbors. Chunks with whitespace-only text, chunks whose
// embedding fails or returns no vector, and chunks whose individual upsert
// fails are skipped with a reason in the report; the batch continues. The
// call itself fails only when the collection cannot be reached or created.
func (g *Gateway) UpsertChunks(ctx context.Context, userID string, chunks []*core.Chunk) (*core.UpsertReport, error) {
	collection, err := g.EnsureCollection(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]core.ChunkResult, len(chunks))
	var pending []int
	for i, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			results[i] = core.ChunkResult{
				ChunkID: chunkID(chunk),
				Status:  core.ChunkSkipped,
				Reason:  err.Error(),
			}
			g.logger.Warn("skipping invalid chunk", "collection", collection, "err", err)
			continue
		}
		if strings.TrimSpace(chunk.Text) == "" {
			results[i] = core.ChunkResult{
				ChunkID: chunk.ChunkID,
				Status:  core.ChunkSkipped,
				Reason:  "empty text",
			}
			continue
		}
		pending = append(pending, i)
	}

	vectors := g.embedPending(ctx, collection, chunks, pending, results)

	for _, i := range pending {
		vector, ok := vectors[i]
		if !ok {
			// embedPending already recorded the skip
			continue
		}
		chunk := chunks[i]
		if len(vector) == 0 {
			results[i] = core.ChunkResult{
				ChunkID: chunk.ChunkID,
				Status:  core.ChunkSkipped,
				Reason:  "embedding returned no vector",
			}
			g.logger.Warn("skipping chunk, embedding returned no vector",
				"collection", collection, "doc_id", chunk.DocID, "chunk_id", chunk.ChunkID)
			continue
		}

		point := core.EmbeddedPoint{
			ID:     core.PointID(chunk.DocID, chunk.ChunkID),
			Vector: vector,
			Payload: core.PointPayload{
				DocID:      chunk.DocID,
				Filename:   chunk.Filename,
				ChunkID:    chunk.ChunkID,
				Text:       chunk.Text,
				OriginalID: chunk.OriginalID(),
			},
		}
		if err := g.store.Upsert(ctx, collection, []core.EmbeddedPoint{point}); err != nil {
			results[i] = core.ChunkResult{
				ChunkID: chunk.ChunkID,
				Status:  core.ChunkSkipped,
				Reason:  fmt.Sprintf("upsert failed: %v", err),
			}
			g.logger.Warn("skipping chunk, upsert failed",
				"collection", collection, "doc_id", chunk.DocID, "chunk_id", chunk.ChunkID, "err", err)
			continue
		}

		results[i] = core.ChunkResult{
			ChunkID: chunk.ChunkID,
			Status:  core.ChunkPersisted,
		}
	}

	report := &core.UpsertReport{Collection: collection, Results: results}
	g.logger.Debug("upserted chunk batch",
		"collection", collection, "persisted", report.Persisted(), "skipped", report.Skipped())
	return report, nil
}

// embedPending embeds the chunks at the given indices, batching first and
// degrading to per-chunk calls when the batch fails or comes back short.
// Chunks that still fail individually are recorded as skipped in results
// and omitted from the returned map.
func (g *Gateway) embedPending(ctx context.Context, collection string, chunks []*core.Chunk, pending []int, results []core.ChunkResult) map[int][]float32 {
	vectors := make(map[int][]float32, len(pending))
	if len(pending) == 0 {
		return vectors
	}

	texts := make([]string, len(pending))
	for n, i := range pending {
		texts[n] = chunks[i].Text
	}

	batch, err := g.embedder.EmbedTexts(ctx, texts)
	if err == nil && len(batch) == len(texts) {
		for n, i := range pending {
			vectors[i] = batch[n]
		}
		return vectors
	}
	if err != nil {
		g.logger.Warn("batch embedding failed, retrying chunks individually",
			"collection", collection, "chunks", len(texts), "err", err)
	} else {
		g.logger.Warn("batch embedding came back short, retrying chunks individually",
			"collection", collection, "want", len(texts), "got", len(batch))
	}

	for _, i := range pending {
		chunk := chunks[i]
		vector, err := g.embedder.EmbedText(ctx, chunk.Text)
		if err != nil {
			results[i] = core.ChunkResult{
				ChunkID: chunk.ChunkID,
				Status:  core.ChunkSkipped,
				Reason:  fmt.Sprintf("%v: %v", ErrEmbedding, err),
			}
			g.logger.Warn("skipping chunk, embedding failed",
				"collection", collection, "doc_id", chunk.DocID, "chunk_id", chunk.ChunkID, "err", err)
			continue
		}
		vectors[i] = vector
	}
	return vectors
}

func chunkID(chunk *core.Chunk) int {
	if chunk == nil {
		return -1
	}
	return chunk.ChunkID
}
