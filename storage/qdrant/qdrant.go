package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
)

const defaultTimeout = 15 * time.Second

// Config holds connection settings for a Qdrant server.
type Config struct {
	// URL is the base URL of the Qdrant REST API, e.g. "http://localhost:6333".
	URL string
	// APIKey is sent in the api-key header when non-empty.
	APIKey string
	// Timeout bounds each request. Defaults to 15 seconds.
	Timeout time.Duration
}

// Store is a minimal REST client to Qdrant implementing storage.VectorStore.
// It assumes cosine distance for every collection it creates.
type Store struct {
	url    string
	apiKey string
	client *http.Client
	logger *slog.Logger
}

var _ storage.VectorStore = (*Store)(nil)

// New creates a Qdrant-backed vector store.
func New(cfg Config) (storage.VectorStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: empty URL", storage.ErrConnection)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Store{
		url:    strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "qdrant-store"),
	}, nil
}

func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s/exists", s.url, name), nil, &resp)
	if err == nil {
		return resp.Result.Exists, nil
	}
	if !errors.Is(err, storage.ErrCollectionNotFound) {
		return false, err
	}

	// The /exists endpoint answers 200 for missing collections, so a 404
	// means the server predates it. Fall back to fetching the collection.
	err = s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, name), nil, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrCollectionNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", storage.ErrInvalidDimension, dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 when the collection already exists with the same schema.
	if err := s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, name), body, nil); err != nil {
		return err
	}
	s.logger.Debug("collection ready", "collection", name, "dimension", dimension)
	return nil
}

func (s *Store) Upsert(ctx context.Context, collection string, points []core.EmbeddedPoint) error {
	if len(points) == 0 {
		return nil
	}
	wire := make([]map[string]any, len(points))
	for i, p := range points {
		wire[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": wire}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, collection)
	return s.doJSON(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var resp struct {
		Result struct {
			PointsCount int `json:"points_count"`
		} `json:"result"`
	}
	err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, collection), nil, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Result.PointsCount, nil
}

func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]*core.ScoredPoint, error) {
	if limit <= 0 {
		limit = 5
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
		"with_vector":  false,
	}
	var resp struct {
		Result []struct {
			ID      uint64            `json:"id"`
			Score   float32           `json:"score"`
			Payload core.PointPayload `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, collection)
	if err := s.doJSON(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}
	results := make([]*core.ScoredPoint, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, &core.ScoredPoint{
			Point: &core.EmbeddedPoint{ID: r.ID, Payload: r.Payload},
			Score: r.Score,
		})
	}
	return results, nil
}

// Close is a no-op for the REST client.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// doJSON performs one request with a JSON body and decodes a JSON response
// into out when out is non-nil. Transport failures map to
// storage.ErrConnection and 404 responses to storage.ErrCollectionNotFound.
func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", storage.ErrCollectionNotFound, method, url)
	}
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("qdrant %s %s failed: %s: %s", method, url, resp.Status, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
	}
	return nil
}
