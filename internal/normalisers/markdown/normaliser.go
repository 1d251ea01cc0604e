package markdown

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
	"github.com/nautilus-labs/voxcart/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown files.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the file kind this normaliser handles.
func (n *Normaliser) Kind() domain.FileKind {
	return domain.KindMarkdown
}

// Normalise converts a markdown file to a normalised document with the
// markdown formatting simplified to plain text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawFile) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, domain.ErrInvalidInput
	}

	content := stripMarkdown(string(raw.Content))

	return &domain.Document{
		Name:       raw.Name,
		Kind:       domain.KindMarkdown,
		Content:    normalisers.NormaliseWhitespace(content),
		IngestedAt: time.Now(),
	}, nil
}

var (
	fencedCode  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode  = regexp.MustCompile("`([^`]*)`")
	images      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	links       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headings    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis    = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	blockquotes = regexp.MustCompile(`(?m)^>\s?`)
	hrules      = regexp.MustCompile(`(?m)^(-{3,}|\*{3,}|_{3,})\s*$`)
	listMarkers = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
)

// stripMarkdown removes common markdown formatting for plain text
// content. Simplified: handles the common cases, not the full spec.
func stripMarkdown(content string) string {
	content = fencedCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "$1")
	content = links.ReplaceAllString(content, "$1")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "$2")
	content = blockquotes.ReplaceAllString(content, "")
	content = hrules.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
