package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/poiesic/docchat"
	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/core"
	"github.com/poiesic/docchat/ingestion"
	"github.com/poiesic/docchat/search"
	"github.com/poiesic/docchat/storage"
	"github.com/poiesic/docchat/storage/qdrant"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docchat",
		Usage: "Chat with your own documents through a local vector index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the embedded vector database directory",
				Value:   "./docchat_db",
				EnvVars: []string{"DOCCHAT_DB"},
			},
			&cli.StringFlag{
				Name:    "qdrant-url",
				Usage:   "Qdrant server URL; when set, used instead of the embedded database",
				EnvVars: []string{"QDRANT_URL"},
			},
			&cli.StringFlag{
				Name:    "qdrant-api-key",
				Usage:   "API key for the Qdrant server",
				EnvVars: []string{"QDRANT_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"DOCCHAT_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "bge-small-en-v1.5",
				EnvVars: []string{"DOCCHAT_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "chat-model",
				Usage:   "Chat completion model name",
				Value:   "llama3",
				EnvVars: []string{"DOCCHAT_CHAT_MODEL"},
			},
			&cli.IntFlag{
				Name:    "vector-size",
				Usage:   "Dimension of the embedding model's vectors",
				Value:   384,
				EnvVars: []string{"DOCCHAT_VECTOR_SIZE"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest one or more documents for a user",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User the documents belong to",
						Required: true,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question over a user's ingested documents",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User whose documents to search",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of chunks retrieved per question",
						Value: search.DefaultLimit,
					},
					&cli.BoolFlag{
						Name:  "sources",
						Usage: "Print the retrieved chunks alongside the answer",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show how many chunks are indexed for a user",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User to inspect",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newAssistant(c *cli.Context) (*docchat.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithVectorSize(c.Int("vector-size")),
	)

	opts := []docchat.AssistantOption{docchat.WithAIConfig(aiConfig)}
	if url := c.String("qdrant-url"); url != "" {
		opts = append(opts, docchat.WithQdrant(qdrant.Config{
			URL:    url,
			APIKey: c.String("qdrant-api-key"),
		}))
	}

	return docchat.NewAssistant(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	pipeline, err := assistant.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	userID := c.String("user")
	reqs := make([]ingestion.Request, len(files))
	for i, file := range files {
		reqs[i] = ingestion.Request{
			Path:     file,
			Filename: filepath.Base(file),
			DocID:    uuid.NewString(),
			UserID:   userID,
		}
	}

	results := pipeline.IngestAll(context.Background(), reqs)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Request.Filename, result.Err)
			continue
		}
		fmt.Printf("OK   %s: %d chunks, %d persisted, %d skipped\n",
			result.Request.Filename, len(result.Chunks),
			result.Report.Persisted(), result.Report.Skipped())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	searcher, err := assistant.NewSearcher(search.WithLimit(c.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	answer, err := searcher.Ask(context.Background(), c.String("user"), question)
	if err != nil {
		if errors.Is(err, search.ErrNoDocuments) {
			return fmt.Errorf("no documents ingested for user %q, run ingest first", c.String("user"))
		}
		return err
	}

	fmt.Println(answer.Text)

	if c.Bool("sources") {
		fmt.Println()
		for _, source := range answer.Sources {
			payload := source.Point.Payload
			fmt.Printf("[%.3f] %s (chunk %d)\n", source.Score, payload.Filename, payload.ChunkID)
		}
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	userID := c.String("user")
	collection := core.CollectionName(userID)

	count, err := assistant.Store().Count(context.Background(), collection)
	if err != nil {
		if errors.Is(err, storage.ErrCollectionNotFound) {
			fmt.Printf("%s: no documents ingested\n", userID)
			return nil
		}
		return err
	}

	fmt.Printf("%s: %d chunks indexed in %s\n", userID, count, collection)
	return nil
}

func setup(c *cli.Context) error {
	// A missing .env file is fine; flags and environment still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
