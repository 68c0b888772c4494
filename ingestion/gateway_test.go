package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/docchat/ai/mock"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
	"github.com/poiesic/docchat/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, embedder *mock.MockEmbedder) (*Gateway, storage.VectorStore) {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gateway, err := NewGateway(store, embedder)
	require.NoError(t, err)
	return gateway, store
}

func makeChunks(docID string, texts ...string) []*core.Chunk {
	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{DocID: docID, Filename: "notes.txt", ChunkID: i, Text: text}
	}
	return chunks
}

func TestNewGateway(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	t.Run("nil store", func(t *testing.T) {
		_, err := NewGateway(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewGateway(store, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("invalid dimension option", func(t *testing.T) {
		_, err := NewGateway(store, mock.NewMockEmbedder(), WithDimension(0))
		assert.ErrorIs(t, err, storage.ErrInvalidDimension)
	})
}

func TestGateway_EnsureCollection(t *testing.T) {
	ctx := context.Background()
	gateway, store := newGateway(t, mock.NewMockEmbedder())

	name, err := gateway.EnsureCollection(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "user_alice_docs", name)

	exists, err := store.CollectionExists(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("idempotent for populated collection", func(t *testing.T) {
		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "first chunk"))
		require.NoError(t, err)
		require.Equal(t, 1, report.Persisted())

		before, err := store.Count(ctx, name)
		require.NoError(t, err)

		_, err = gateway.EnsureCollection(ctx, "alice")
		require.NoError(t, err)

		after, err := store.Count(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestGateway_UpsertChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("one failing embedding does not abort the batch", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			if text == "third chunk" {
				return nil, errors.New("model overloaded")
			}
			return []float32{1, 0, 0}, nil
		}
		gateway, store := newGateway(t, embedder)

		chunks := makeChunks("doc-1", "first chunk", "second chunk", "third chunk", "fourth chunk", "fifth chunk")
		report, err := gateway.UpsertChunks(ctx, "alice", chunks)
		require.NoError(t, err)

		assert.Equal(t, 4, report.Persisted())
		assert.Equal(t, 1, report.Skipped())

		count, err := store.Count(ctx, report.Collection)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		results, err := store.Search(ctx, report.Collection, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, 2, r.Point.Payload.ChunkID)
		}
	})

	t.Run("embeddable chunks go to the embedder as one batch", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		var batches [][]string
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			batches = append(batches, texts)
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 0, 0}
			}
			return vectors, nil
		}
		gateway, store := newGateway(t, embedder)

		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "first chunk", "   ", "third chunk"))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Persisted())
		assert.Equal(t, 1, report.Skipped())

		require.Len(t, batches, 1)
		assert.Equal(t, []string{"first chunk", "third chunk"}, batches[0])

		count, err := store.Count(ctx, report.Collection)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("short batch falls back to individual embedding", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0, 0}}, nil
		}
		gateway, store := newGateway(t, embedder)

		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "first chunk", "second chunk"))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Persisted())

		count, err := store.Count(ctx, report.Collection)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("whitespace-only chunks are skipped", func(t *testing.T) {
		gateway, store := newGateway(t, mock.NewMockEmbedder())

		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "real text", "   \n\t"))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Persisted())
		require.Equal(t, 1, report.Skipped())
		assert.Equal(t, "empty text", report.Results[1].Reason)

		count, err := store.Count(ctx, report.Collection)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("embedding returning no vector is skipped", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{}, nil
		}
		gateway, _ := newGateway(t, embedder)

		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "some text"))
		require.NoError(t, err)
		assert.Equal(t, 0, report.Persisted())
		assert.Equal(t, 1, report.Skipped())
	})

	t.Run("all chunks skipped is not an error", func(t *testing.T) {
		gateway, _ := newGateway(t, mock.NewMockEmbedder())

		report, err := gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "", "  "))
		require.NoError(t, err)
		assert.Equal(t, 0, report.Persisted())
		assert.Equal(t, 2, report.Skipped())
	})

	t.Run("nil chunk is reported, not fatal", func(t *testing.T) {
		gateway, _ := newGateway(t, mock.NewMockEmbedder())

		report, err := gateway.UpsertChunks(ctx, "alice", []*core.Chunk{nil})
		require.NoError(t, err)
		require.Equal(t, 1, report.Skipped())
		assert.Equal(t, -1, report.Results[0].ChunkID)
	})

	t.Run("re-ingesting a document replaces its points", func(t *testing.T) {
		gateway, store := newGateway(t, mock.NewMockEmbedder())

		chunks := makeChunks("doc-1", "first chunk", "second chunk")
		_, err := gateway.UpsertChunks(ctx, "alice", chunks)
		require.NoError(t, err)
		_, err = gateway.UpsertChunks(ctx, "alice", chunks)
		require.NoError(t, err)

		count, err := store.Count(ctx, core.CollectionName("alice"))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("unreachable store is fatal", func(t *testing.T) {
		gateway, err := NewGateway(&unreachableStore{}, mock.NewMockEmbedder())
		require.NoError(t, err)

		_, err = gateway.UpsertChunks(ctx, "alice", makeChunks("doc-1", "some text"))
		assert.ErrorIs(t, err, storage.ErrConnection)
	})
}

// unreachableStore fails every operation with storage.ErrConnection.
type unreachableStore struct{}

func (u *unreachableStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	return false, fmt.Errorf("%w: dial tcp", storage.ErrConnection)
}

func (u *unreachableStore) CreateCollection(ctx context.Context, name string, dimension int) error {
	return fmt.Errorf("%w: dial tcp", storage.ErrConnection)
}

func (u *unreachableStore) Upsert(ctx context.Context, collection string, points []core.EmbeddedPoint) error {
	return fmt.Errorf("%w: dial tcp", storage.ErrConnection)
}

func (u *unreachableStore) Count(ctx context.Context, collection string) (int, error) {
	return 0, fmt.Errorf("%w: dial tcp", storage.ErrConnection)
}

func (u *unreachableStore) Search(ctx context.Context, collection string, vector []float32, limit int) ([]*core.ScoredPoint, error) {
	return nil, fmt.Errorf("%w: dial tcp", storage.ErrConnection)
}

func (u *unreachableStore) Close() error { return nil }
