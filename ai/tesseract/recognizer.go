package tesseract

import (
	"context"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
	"github.com/poiesic/docchat/ai"
)

// Recognizer implements ai.Recognizer using the Tesseract OCR engine.
//
// A gosseract client is not safe for concurrent use, so the recognizer
// creates one per call; Tesseract keeps its trained data cached at the
// process level, which makes per-call clients cheap.
type Recognizer struct {
	languages []string
	logger    *slog.Logger
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLanguages sets the OCR languages, e.g. "eng", "deu".
// Default is Tesseract's own default (English).
func WithLanguages(languages ...string) Option {
	return func(r *Recognizer) {
		r.languages = languages
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recognizer) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRecognizer creates a Tesseract-backed recognizer.
//
// Returns ai.Recognizer interface to enforce abstraction.
func NewRecognizer(opts ...Option) ai.Recognizer {
	r := &Recognizer{
		logger: slog.Default().With("component", "tesseract-recognizer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recognize runs OCR over an encoded image held in memory.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(r.languages) > 0 {
		if err := client.SetLanguage(r.languages...); err != nil {
			return "", err
		}
	}

	if err := client.SetImageFromBytes(image); err != nil {
		r.logger.Error("tesseract could not load image bytes", "err", err)
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		r.logger.Error("tesseract recognition failed", "err", err)
		return "", err
	}

	r.logger.Debug("recognized text from image", "chars", len(text))
	return text, nil
}

// RecognizeFile runs OCR over an image file on disk.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(r.languages) > 0 {
		if err := client.SetLanguage(r.languages...); err != nil {
			return "", err
		}
	}

	if err := client.SetImage(path); err != nil {
		r.logger.Error("tesseract could not load image file", "path", path, "err", err)
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		r.logger.Error("tesseract recognition failed", "path", path, "err", err)
		return "", err
	}

	r.logger.Debug("recognized text from image file", "path", path, "chars", len(text))
	return text, nil
}
