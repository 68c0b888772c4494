package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/docchat/core"
)

// TextExtractor reads plain-text formats directly from disk.
// Undecodable bytes are replaced with the Unicode replacement character
// rather than failing the document.
type TextExtractor struct {
	logger *slog.Logger
}

var _ Extractor = (*TextExtractor)(nil)

// NewTextExtractor creates the text variant.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{
		logger: slog.Default().With("component", "text-extractor"),
	}
}

// Extract reads the file's content as text.
// Returns core.ErrNotFound if the path is missing and core.ErrEmptyInput
// for a zero-length file.
func (e *TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", core.ErrNotFound, path)
		}
		return "", err
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: %s", core.ErrEmptyInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := strings.ToValidUTF8(string(data), "�")
	e.logger.Debug("read text file", "path", path, "chars", len(text))
	return text, nil
}
