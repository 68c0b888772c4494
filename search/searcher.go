package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/storage"
)

// DefaultLimit is the number of chunks retrieved per query when no override
// is configured.
const DefaultLimit = 5

// Searcher retrieves a user's most relevant document chunks for a query and
// turns them into grounded answers.
type Searcher struct {
	store    storage.VectorStore
	embedder ai.Embedder
	answerer ai.Answerer
	limit    int
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLimit sets how many chunks are retrieved per query.
// Default is DefaultLimit.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 1 {
			return fmt.Errorf("limit must be at least 1, got %d", limit)
		}
		s.limit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.VectorStore, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: provider.Embedder(),
		answerer: provider.Answerer(),
		limit:    DefaultLimit,
		logger:   slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Retrieve embeds the query and returns the user's most similar chunks,
// ordered by similarity score descending. Returns ErrNoDocuments when the
// user has no collection or the collection holds no points.
func (s *Searcher) Retrieve(ctx context.Context, userID, query string) ([]*core.ScoredPoint, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	collection := core.CollectionName(userID)
	exists, err := s.store.CollectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, userID)
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.store.Search(ctx, collection, vector, s.limit)
	if err != nil {
		if errors.Is(err, storage.ErrCollectionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoDocuments, userID)
		}
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, userID)
	}

	s.logger.Debug("retrieved chunks", "user_id", userID, "hits", len(results))
	return results, nil
}

// Answer is a grounded response to one question, with the chunks it drew on.
type Answer struct {
	Text    string
	Sources []*core.ScoredPoint
}

// Ask retrieves the chunks most relevant to the question and asks the
// language model to answer from them.
func (s *Searcher) Ask(ctx context.Context, userID, question string) (*Answer, error) {
	sources, err := s.Retrieve(ctx, userID, question)
	if err != nil {
		return nil, err
	}

	prompt := renderPrompt(question, sources)
	text, err := s.answerer.Answer(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("answering question: %w", err)
	}

	s.logger.Info("answered question", "user_id", userID, "sources", len(sources))
	return &Answer{Text: text, Sources: sources}, nil
}
