package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/poiesic/docchat/core"
)

// ScannedPDFSentinel is returned for a PDF that opens cleanly but yields no
// text from any page, which usually means it is scanned or image-based.
const ScannedPDFSentinel = "[This PDF appears to contain no extractable text. It may be scanned or image-based.]"

// pdfDocument is the page-level view of an opened PDF.
// go-fitz satisfies it in production; tests substitute fakes.
type pdfDocument interface {
	NumPage() int
	Text(page int) (string, error)
	Close() error
}

// openStrategy is one way of opening the PDF at a path.
// Strategies are tried in order; the first success wins.
type openStrategy struct {
	name string
	open func(path string) (pdfDocument, error)
}

// PDFExtractor extracts text from PDF documents page by page.
// A page that fails to extract is logged and omitted; only a document that
// no open strategy can parse is an error.
type PDFExtractor struct {
	strategies []openStrategy
	logger     *slog.Logger
}

var _ Extractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates the PDF variant with the default open strategies:
// a direct open, then a retry against a freshly materialized copy of the
// file's raw bytes (some malformed uploads open once rewritten).
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		strategies: []openStrategy{
			{name: "direct", open: openDirect},
			{name: "buffered-copy", open: openBufferedCopy},
		},
		logger: slog.Default().With("component", "pdf-extractor"),
	}
}

// Extract opens the PDF and concatenates the text of every readable page.
// Returns core.ErrNotFound if the path is missing, core.ErrEmptyInput for a
// zero-length file, ScannedPDFSentinel when no page yields text, and
// core.ErrDecode when every open strategy fails.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
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

	doc, err := e.open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var all strings.Builder
	pages := doc.NumPage()
	for page := 0; page < pages; page++ {
		text, err := doc.Text(page)
		if err != nil {
			// Per-page failures never abort the document.
			e.logger.Warn("skipping unreadable PDF page",
				"path", path, "page", page+1, "err", err)
			continue
		}
		all.WriteString(text)
	}

	if strings.TrimSpace(all.String()) == "" {
		e.logger.Warn("no text extracted from PDF, may be scanned", "path", path)
		return ScannedPDFSentinel, nil
	}

	e.logger.Debug("extracted PDF text", "path", path, "pages", pages, "chars", all.Len())
	return all.String(), nil
}

// open tries each open strategy in order and returns the first document
// that opens, or core.ErrDecode when all strategies fail.
func (e *PDFExtractor) open(path string) (pdfDocument, error) {
	var lastErr error
	for _, strategy := range e.strategies {
		doc, err := strategy.open(path)
		if err == nil {
			return doc, nil
		}
		e.logger.Warn("PDF open strategy failed",
			"path", path, "strategy", strategy.name, "err", err)
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %s: %v", core.ErrDecode, path, lastErr)
}

// fitzDocument wraps a go-fitz document, removing the temporary copy (if
// any) when closed.
type fitzDocument struct {
	doc     *fitz.Document
	tmpPath string
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

func (d *fitzDocument) Text(page int) (string, error) { return d.doc.Text(page) }

func (d *fitzDocument) Close() error {
	err := d.doc.Close()
	if d.tmpPath != "" {
		os.Remove(d.tmpPath)
	}
	return err
}

// openDirect opens the PDF in place.
func openDirect(path string) (pdfDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &fitzDocument{doc: doc}, nil
}

// openBufferedCopy re-reads the file's raw bytes into a fresh temporary
// copy and opens that.
func openBufferedCopy(path string) (pdfDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "docchat-*.pdf")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	doc, err := fitz.New(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	return &fitzDocument{doc: doc, tmpPath: tmp.Name()}, nil
}
