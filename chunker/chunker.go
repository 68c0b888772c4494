package chunker

import "fmt"

const (
	// DefaultWindow is the default chunk size in runes.
	DefaultWindow = 1000
	// DefaultOverlap is the default number of runes shared by consecutive chunks.
	DefaultOverlap = 200
)

// Splitter splits text into overlapping fixed-size windows.
// Splitting is deterministic: the same text always produces the same chunks,
// and concatenating the chunks with overlaps removed reconstructs the text
// exactly.
type Splitter struct {
	window  int
	overlap int
}

// New creates a Splitter with the given window and overlap, both in runes.
// Requires 0 <= overlap < window.
func New(window, overlap int) (*Splitter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	if overlap < 0 || overlap >= window {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < window, got overlap=%d window=%d", overlap, window)
	}
	return &Splitter{window: window, overlap: overlap}, nil
}

// NewDefault creates a Splitter with DefaultWindow and DefaultOverlap.
func NewDefault() *Splitter {
	return &Splitter{window: DefaultWindow, overlap: DefaultOverlap}
}

// Window returns the configured chunk size in runes.
func (s *Splitter) Window() int { return s.window }

// Overlap returns the configured overlap in runes.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into chunks of up to Window runes, each starting
// Window-Overlap runes after the previous one. Empty text produces no
// chunks; text shorter than the window produces exactly one chunk equal to
// the whole text. The final chunk may be shorter than the window.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	length := len(runes)
	if length == 0 {
		return nil
	}

	var chunks []string
	step := s.window - s.overlap
	for start := 0; start < length; start += step {
		end := start + s.window
		if end > length {
			end = length
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == length {
			break
		}
	}
	return chunks
}
