package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/core"
)

// Extractor extracts the raw text of one document file.
type Extractor interface {
	// Extract reads the file at path and returns its text content.
	// Extractors for lossy formats (images, scanned PDFs) return a sentinel
	// string rather than an error when the file is valid but contains no
	// recognizable text.
	Extract(ctx context.Context, path string) (string, error)
}

// Dispatcher routes a file to the extractor variant for its kind, derived
// from the filename's extension. Files with unrecognized extensions are
// attempted as text first, then as an image.
type Dispatcher struct {
	text   Extractor
	image  Extractor
	pdf    Extractor
	logger *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTextExtractor replaces the text variant.
func WithTextExtractor(e Extractor) DispatcherOption {
	return func(d *Dispatcher) { d.text = e }
}

// WithImageExtractor replaces the image variant.
func WithImageExtractor(e Extractor) DispatcherOption {
	return func(d *Dispatcher) { d.image = e }
}

// WithPDFExtractor replaces the PDF variant.
func WithPDFExtractor(e Extractor) DispatcherOption {
	return func(d *Dispatcher) { d.pdf = e }
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher with the default extractor variants.
// The recognizer performs OCR for the image variant.
func NewDispatcher(recognizer ai.Recognizer, opts ...DispatcherOption) (*Dispatcher, error) {
	if recognizer == nil {
		return nil, ErrRecognizerRequired
	}

	logger := slog.Default().With("component", "extract-dispatcher")
	d := &Dispatcher{
		text:   NewTextExtractor(),
		image:  NewImageExtractor(recognizer),
		pdf:    NewPDFExtractor(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Extract extracts text from the file at path. The variant is chosen from
// filename, which may differ from the basename of path when the caller has
// staged the upload under a temporary name.
func (d *Dispatcher) Extract(ctx context.Context, path, filename string) (string, error) {
	kind := core.KindForFilename(filename)
	d.logger.Debug("dispatching extraction", "filename", filename, "kind", kind.String())

	switch kind {
	case core.KindText:
		return d.text.Extract(ctx, path)
	case core.KindImage:
		return d.image.Extract(ctx, path)
	case core.KindPDF:
		return d.pdf.Extract(ctx, path)
	}

	// Unknown extension: attempt the text variant, then the image variant.
	text, textErr := d.text.Extract(ctx, path)
	if textErr == nil {
		return text, nil
	}
	d.logger.Warn("text extraction failed for unknown format, trying image",
		"filename", filename, "err", textErr)

	text, imageErr := d.image.Extract(ctx, path)
	if imageErr == nil {
		return text, nil
	}
	d.logger.Warn("image extraction failed for unknown format",
		"filename", filename, "err", imageErr)

	return "", fmt.Errorf("%w: %s (text: %v; image: %v)",
		core.ErrUnsupportedFormat, filename, textErr, imageErr)
}
