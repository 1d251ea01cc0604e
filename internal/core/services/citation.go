package services

import (
	"fmt"
	"strings"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// NoPassagesMarker is rendered for an empty retrieval result so prompt
// assembly can always tell that retrieval ran and found nothing.
const NoPassagesMarker = "No matching passages were found in the knowledge base."

// CitationFormatter renders retrieval results into a prompt-ready text
// block naming the originating file for each passage.
type CitationFormatter struct{}

// NewCitationFormatter creates a citation formatter.
func NewCitationFormatter() *CitationFormatter {
	return &CitationFormatter{}
}

// Format renders the passages in result order, each followed by its
// source file name. Passage text is sanitised so it cannot be mistaken
// for dialogue-engine control syntax.
func (f *CitationFormatter) Format(result domain.RetrievalResult) string {
	if !result.Found() {
		return NoPassagesMarker
	}

	var b strings.Builder
	b.WriteString("Relevant passages from the knowledge base:\n")
	for i, p := range result.Passages {
		fmt.Fprintf(&b, "\n[%d] %s\n    (source: %s)\n",
			i+1, sanitise(p.Chunk.Content), sanitise(p.Source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// controlSyntax replaces characters and sequences the dialogue engine
// treats as structure: template braces, role tags, and code fences.
var controlSyntax = strings.NewReplacer(
	"{", "(",
	"}", ")",
	"<", "(",
	">", ")",
	"```", "'''",
)

// sanitise neutralises control syntax and collapses newlines so each
// passage stays a single block.
func sanitise(s string) string {
	s = controlSyntax.Replace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
