package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/docchat/core"
)

// renderPrompt builds the completion prompt from the question and the
// retrieved chunks. Each chunk is labeled with its source file so the model
// can cite where an answer came from.
func renderPrompt(question string, sources []*core.ScoredPoint) string {
	var b strings.Builder
	b.WriteString("You are a document assistant. Answer the question using only the excerpts below. ")
	b.WriteString("If the excerpts do not contain the answer, say so.\n\n")

	for i, source := range sources {
		payload := source.Point.Payload
		fmt.Fprintf(&b, "Excerpt %d (from %s):\n%s\n\n", i+1, payload.Filename, payload.Text)
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer:", question)
	return b.String()
}
