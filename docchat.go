package docchat

import (
	"log/slog"

	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/ai/openai"
	"github.com/poiesic/docchat/ai/tesseract"
	"github.com/poiesic/docchat/extract"
	"github.com/poiesic/docchat/ingestion"
	"github.com/poiesic/docchat/search"
	"github.com/poiesic/docchat/storage"
	"github.com/poiesic/docchat/storage/badger"
	"github.com/poiesic/docchat/storage/qdrant"
)

// Assistant wires the vector store, AI provider, and OCR engine together and
// hands out configured pipelines and searchers.
type Assistant struct {
	store      storage.VectorStore
	provider   ai.AIProvider
	recognizer ai.Recognizer
	aiConfig   *ai.Config
	logger     *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig  *ai.Config
	qdrant    *qdrant.Config
	languages []string
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = cfg
	}
}

// WithQdrant stores vectors in a Qdrant server instead of the embedded
// database at the assistant's path.
func WithQdrant(cfg qdrant.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.qdrant = &cfg
	}
}

// WithOCRLanguages sets the languages the OCR engine recognizes.
func WithOCRLanguages(languages ...string) AssistantOption {
	return func(o *assistantOptions) {
		o.languages = languages
	}
}

// NewAssistant creates an assistant backed by an embedded vector store at
// filePath, unless WithQdrant points it at a server.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	var store storage.VectorStore
	var err error
	if options.qdrant != nil {
		store, err = qdrant.New(*options.qdrant)
	} else {
		store, err = badger.Open(filePath, false)
	}
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	var recognizerOpts []tesseract.Option
	if len(options.languages) > 0 {
		recognizerOpts = append(recognizerOpts, tesseract.WithLanguages(options.languages...))
	}

	return &Assistant{
		store:      store,
		provider:   provider,
		recognizer: tesseract.NewRecognizer(recognizerOpts...),
		aiConfig:   options.aiConfig,
		logger:     slog.Default(),
	}, nil
}

// Close releases the assistant's resources.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

// Store returns the vector store backing this assistant.
func (a *Assistant) Store() storage.VectorStore {
	return a.store
}

// NewIngestionPipeline creates a pipeline that ingests documents into this
// assistant's vector store.
func (a *Assistant) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	dispatcher, err := extract.NewDispatcher(a.recognizer)
	if err != nil {
		return nil, err
	}

	gateway, err := ingestion.NewGateway(a.store, a.provider.Embedder(),
		ingestion.WithDimension(a.aiConfig.VectorSize))
	if err != nil {
		return nil, err
	}

	return ingestion.NewPipeline(dispatcher, gateway, opts...)
}

// NewSearcher creates a searcher over this assistant's vector store.
func (a *Assistant) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.store, a.provider, opts...)
}
