package main

import (
	"context"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docchat"
	"github.com/poiesic/docchat/ingestion"
)

var (
	srcDir  = flag.String("src", "", "directory of documents to ingest")
	dbPath  = flag.String("db", "./docchat_db", "path to the embedded vector database")
	userID  = flag.String("user", "seed", "user to ingest the documents for")
	workers = flag.Int("workers", 0, "concurrent ingestions (default NumCPU/2)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// collectFiles lists the regular files under dir, skipping dotfiles.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Base(path)[0] == '.' {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func main() {
	if *srcDir == "" {
		slog.Error("a source directory is required, pass -src")
		os.Exit(1)
	}

	files, err := collectFiles(*srcDir)
	if err != nil {
		panic(err)
	}
	if len(files) == 0 {
		slog.Info("nothing to ingest", "dir", *srcDir)
		return
	}

	assistant, err := docchat.NewAssistant(*dbPath)
	if err != nil {
		panic(err)
	}
	defer assistant.Close()

	pipeline, err := assistant.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}

	poolSize := *workers
	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		panic(err)
	}
	defer pool.Release()

	ctx := context.Background()
	var wg sync.WaitGroup
	var ingested, failed atomic.Int64

	for _, file := range files {
		file := file
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			_, report, err := pipeline.Ingest(ctx, ingestion.Request{
				Path:     file,
				Filename: filepath.Base(file),
				DocID:    uuid.NewString(),
				UserID:   *userID,
			})
			if err != nil {
				failed.Add(1)
				slog.Error("ingestion failed", "file", file, "err", err)
				return
			}
			ingested.Add(1)
			slog.Info("ingested", "file", file,
				"persisted", report.Persisted(), "skipped", report.Skipped())
		}); err != nil {
			wg.Done()
			failed.Add(1)
			slog.Error("could not schedule ingestion", "file", file, "err", err)
		}
	}
	wg.Wait()

	slog.Info("seeding complete",
		"files", len(files), "ingested", ingested.Load(), "failed", failed.Load())
	if failed.Load() > 0 {
		os.Exit(1)
	}
}
