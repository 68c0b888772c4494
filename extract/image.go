package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/docchat/ai"
	"github.com/poiesic/docchat/core"

	// Register decoders for the supported raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// NoTextSentinel is returned for a valid image in which OCR finds no
// recognizable text. Callers get a chunk they can surface to the user
// instead of a hard failure.
const NoTextSentinel = "[No text could be extracted from this image]"

// ImageExtractor runs optical character recognition over raster images.
type ImageExtractor struct {
	recognizer ai.Recognizer
	logger     *slog.Logger
}

var _ Extractor = (*ImageExtractor)(nil)

// NewImageExtractor creates the image variant using the given OCR recognizer.
func NewImageExtractor(recognizer ai.Recognizer) *ImageExtractor {
	return &ImageExtractor{
		recognizer: recognizer,
		logger:     slog.Default().With("component", "image-extractor"),
	}
}

// imageStrategy is one way of opening and recognizing an image.
// Strategies are tried in order; the first success wins.
type imageStrategy struct {
	name string
	run  func(ctx context.Context, data []byte) (string, error)
}

// Extract decodes the image and runs OCR on it.
// Returns core.ErrNotFound if the path is missing, NoTextSentinel when OCR
// yields only whitespace, and core.ErrDecode when no strategy can open the
// image.
func (e *ImageExtractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", core.ErrNotFound, path)
		}
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	strategies := []imageStrategy{
		{
			// Validate the encoding with the registered decoders before
			// handing the bytes to the OCR engine.
			name: "decode-then-ocr",
			run: func(ctx context.Context, data []byte) (string, error) {
				_, format, err := image.Decode(bytes.NewReader(data))
				if err != nil {
					return "", err
				}
				e.logger.Debug("decoded image", "path", path, "format", format)
				return e.recognizer.Recognize(ctx, data)
			},
		},
		{
			// The OCR engine reads more encodings from disk than the stdlib
			// decoders handle (e.g. multi-page TIFF); let it open the file
			// itself.
			name: "ocr-from-file",
			run: func(ctx context.Context, _ []byte) (string, error) {
				return e.recognizer.RecognizeFile(ctx, path)
			},
		},
	}

	var lastErr error
	for _, strategy := range strategies {
		text, err := strategy.run(ctx, data)
		if err != nil {
			e.logger.Warn("image strategy failed",
				"path", path, "strategy", strategy.name, "err", err)
			lastErr = err
			continue
		}

		if strings.TrimSpace(text) == "" {
			e.logger.Warn("OCR extracted no text from image", "path", path)
			return NoTextSentinel, nil
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %s: %v", core.ErrDecode, path, lastErr)
}
