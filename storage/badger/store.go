package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
)

// Store is an embedded vector store backed by BadgerDB. It keeps one
// key space per collection and scans it linearly on search, which is fine
// for the per-user collection sizes this project deals in.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.VectorStore = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// collectionMeta is the stored configuration of one collection.
type collectionMeta struct {
	Dimension int `json:"dimension"`
}

// pointValue is the stored form of one embedded point.
type pointValue struct {
	Vector  []float32         `json:"vector"`
	Payload core.PointPayload `json:"payload"`
}

// Open opens a BadgerDB-backed vector store at the specified path.
// Creates the directory if it doesn't exist. Pass inMemory=true for an
// ephemeral store (useful in tests).
func Open(filePath string, inMemory bool) (storage.VectorStore, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	logger := slog.Default().With("component", "badger-store")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if s.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	exists := false
	err := s.withTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeCollectionMetaKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", storage.ErrInvalidDimension, dimension)
	}
	return s.withTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCollectionMetaKey(name))
		if err == nil {
			// Recreating with the same dimension is idempotent.
			var meta collectionMeta
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			if meta.Dimension != dimension {
				return fmt.Errorf("%w: collection %s has dimension %d, want %d",
					storage.ErrInvalidDimension, name, meta.Dimension, dimension)
			}
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(collectionMeta{Dimension: dimension})
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		return tx.Set(makeCollectionMetaKey(name), data)
	}, true)
}

func (s *Store) Upsert(ctx context.Context, collection string, points []core.EmbeddedPoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	return s.withTx(func(tx *badger.Txn) error {
		if err := requireCollection(tx, collection); err != nil {
			return err
		}
		for _, p := range points {
			data, err := json.Marshal(pointValue{Vector: p.Vector, Payload: p.Payload})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			if err := tx.Set(makePointKey(collection, p.ID), data); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := s.withTx(func(tx *badger.Txn) error {
		if err := requireCollection(tx, collection); err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePointPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]*core.ScoredPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	var results []*core.ScoredPoint
	err := s.withTx(func(tx *badger.Txn) error {
		if err := requireCollection(tx, collection); err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePointPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			id, ok := pointIDFromKey(collection, item.Key())
			if !ok {
				continue
			}

			var value pointValue
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &value)
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}

			// Skip points without embeddings
			if len(value.Vector) == 0 {
				continue
			}

			similarity := cosineSimilarity(vector, value.Vector)
			results = append(results, &core.ScoredPoint{
				Point: &core.EmbeddedPoint{ID: id, Vector: value.Vector, Payload: value.Payload},
				Score: similarity,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.ScoredPoint) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// requireCollection returns storage.ErrCollectionNotFound when the
// collection's meta key is absent.
func requireCollection(tx *badger.Txn, collection string) error {
	_, err := tx.Get(makeCollectionMetaKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", storage.ErrCollectionNotFound, collection)
	}
	return err
}

// pointIDFromKey recovers the point ID from a full point key.
func pointIDFromKey(collection string, key []byte) (uint64, bool) {
	prefix := makePointPrefix(collection)
	if len(key) != len(prefix)+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(prefix):]), true
}

// cosineSimilarity calculates the cosine similarity of two vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
