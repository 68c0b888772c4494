package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) storage.VectorStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := New(Config{URL: srv.URL})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNew(t *testing.T) {
	t.Run("empty URL is rejected", func(t *testing.T) {
		_, err := New(Config{})
		assert.ErrorIs(t, err, storage.ErrConnection)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		store, err := New(Config{URL: "http://localhost:6333/"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:6333", store.(*Store).url)
	})
}

func TestStore_CollectionExists(t *testing.T) {
	ctx := context.Background()

	t.Run("existing collection", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/collections/user_alice_docs/exists", r.URL.Path)
			fmt.Fprint(w, `{"result":{"exists":true}}`)
		})

		exists, err := store.CollectionExists(ctx, "user_alice_docs")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing collection", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"result":{"exists":false}}`)
		})

		exists, err := store.CollectionExists(ctx, "user_bob_docs")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("server without /exists endpoint, collection present", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/collections/user_alice_docs/exists":
				http.NotFound(w, r)
			case "/collections/user_alice_docs":
				fmt.Fprint(w, `{"result":{"status":"green","points_count":3}}`)
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		})

		exists, err := store.CollectionExists(ctx, "user_alice_docs")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("server without /exists endpoint, collection missing", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		exists, err := store.CollectionExists(ctx, "user_ghost_docs")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unreachable server", func(t *testing.T) {
		store, err := New(Config{URL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		_, err = store.CollectionExists(ctx, "user_alice_docs")
		assert.ErrorIs(t, err, storage.ErrConnection)
	})
}

func TestStore_CreateCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("sends cosine schema", func(t *testing.T) {
		var got map[string]any
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/collections/user_alice_docs", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprint(w, `{"result":true}`)
		})

		require.NoError(t, store.CreateCollection(ctx, "user_alice_docs", 384))
		vectors := got["vectors"].(map[string]any)
		assert.Equal(t, float64(384), vectors["size"])
		assert.Equal(t, "Cosine", vectors["distance"])
	})

	t.Run("invalid dimension", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		assert.ErrorIs(t, store.CreateCollection(ctx, "c", 0), storage.ErrInvalidDimension)
	})
}

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("sends points with wait", func(t *testing.T) {
		var got struct {
			Points []struct {
				ID      uint64            `json:"id"`
				Vector  []float32         `json:"vector"`
				Payload core.PointPayload `json:"payload"`
			} `json:"points"`
		}
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/collections/user_alice_docs/points", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprint(w, `{"result":{"status":"completed"}}`)
		})

		points := []core.EmbeddedPoint{
			{
				ID:     core.PointID("doc-1", 0),
				Vector: []float32{0.1, 0.2},
				Payload: core.PointPayload{
					DocID:      "doc-1",
					Filename:   "notes.txt",
					ChunkID:    0,
					Text:       "hello",
					OriginalID: "doc-1_0",
				},
			},
		}
		require.NoError(t, store.Upsert(ctx, "user_alice_docs", points))
		require.Len(t, got.Points, 1)
		assert.Equal(t, core.PointID("doc-1", 0), got.Points[0].ID)
		assert.Equal(t, "doc-1", got.Points[0].Payload.DocID)
		assert.Equal(t, "hello", got.Points[0].Payload.Text)
	})

	t.Run("no points is a no-op", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		require.NoError(t, store.Upsert(ctx, "user_alice_docs", nil))
	})

	t.Run("missing collection", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		err := store.Upsert(ctx, "user_ghost_docs", []core.EmbeddedPoint{{ID: 1}})
		assert.ErrorIs(t, err, storage.ErrCollectionNotFound)
	})
}

func TestStore_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("reads points_count", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/collections/user_alice_docs", r.URL.Path)
			fmt.Fprint(w, `{"result":{"status":"green","points_count":7}}`)
		})

		count, err := store.Count(ctx, "user_alice_docs")
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("missing collection", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		_, err := store.Count(ctx, "user_ghost_docs")
		assert.ErrorIs(t, err, storage.ErrCollectionNotFound)
	})
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/user_alice_docs/points/search", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["limit"])
		assert.Equal(t, true, body["with_payload"])

		fmt.Fprint(w, `{"result":[
			{"id":11,"score":0.92,"payload":{"doc_id":"doc-1","filename":"notes.txt","chunk_id":4,"text":"first","original_id":"doc-1_4"}},
			{"id":12,"score":0.81,"payload":{"doc_id":"doc-2","filename":"spec.pdf","chunk_id":0,"text":"second","original_id":"doc-2_0"}}
		]}`)
	})

	results, err := store.Search(ctx, "user_alice_docs", []float32{0.5, 0.5}, 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(11), results[0].Point.ID)
	assert.InDelta(t, 0.92, results[0].Score, 1e-6)
	assert.Equal(t, "first", results[0].Point.Payload.Text)
	assert.Equal(t, "doc-2", results[1].Point.Payload.DocID)
}
