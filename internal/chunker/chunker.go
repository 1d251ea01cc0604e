// Package chunker splits normalised document text into overlapping
// chunks along sentence and paragraph boundaries.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// DefaultMaxSize is the default maximum chunk size in characters.
const DefaultMaxSize = 1000

// DefaultMinSize is the default minimum chunk size in characters.
const DefaultMinSize = 200

// DefaultOverlap is the default overlap between adjacent chunks.
const DefaultOverlap = 150

// Chunker splits document content into bounded, overlapping chunks.
type Chunker struct {
	minSize int
	maxSize int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxSize sets the maximum chunk size in characters.
func WithMaxSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithMinSize sets the minimum chunk size in characters.
func WithMinSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.minSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		minSize: DefaultMinSize,
		maxSize: DefaultMaxSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.minSize > c.maxSize {
		c.minSize = c.maxSize / 2
	}
	// Overlap must leave forward progress on every step.
	if c.overlap >= c.maxSize {
		c.overlap = c.maxSize / 4
	}

	return c
}

// Chunk splits a document's content into ordered chunks. Every chunk is
// a contiguous substring of the content; adjacent chunks share exactly
// Chunk.Overlap characters; together they cover the content with no
// gaps. A document shorter than the minimum size yields one chunk equal
// to the whole document. Empty content yields no chunks.
func (c *Chunker) Chunk(doc domain.Document) []domain.Chunk {
	content := doc.Content
	if content == "" {
		return nil
	}
	if len(content) <= c.maxSize {
		return []domain.Chunk{{
			ID:           uuid.New().String(),
			DocumentName: doc.Name,
			Position:     0,
			Content:      content,
		}}
	}

	chunks := make([]domain.Chunk, 0, len(content)/(c.maxSize-c.overlap)+1)

	start := 0
	overlap := 0
	for start < len(content) {
		end := start + c.maxSize
		if end >= len(content) {
			end = len(content)
		} else {
			end = c.breakPoint(content, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			ID:           uuid.New().String(),
			DocumentName: doc.Name,
			Position:     len(chunks),
			Content:      content[start:end],
			Overlap:      overlap,
		})

		if end == len(content) {
			break
		}

		// Carry context across the boundary: the next chunk starts
		// inside the current one by the configured overlap, pulled
		// back to a whitespace boundary where possible.
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		next = wordBoundary(content, next, end)
		overlap = end - next
		start = next
	}

	return chunks
}

// breakPoint finds the best split position in content at or below
// limit. Sentence and paragraph breaks are preferred over word breaks;
// a hard cut at limit is the last resort. The result never falls below
// start+minSize so trailing chunks stay within bounds.
func (c *Chunker) breakPoint(content string, start, limit int) int {
	floor := start + c.minSize
	if floor > limit {
		floor = limit
	}

	window := content[floor:limit]

	// Paragraph break first, then sentence end, then line break.
	if idx := strings.LastIndex(window, "\n\n"); idx >= 0 {
		return floor + idx + 2
	}
	if idx := lastSentenceEnd(window); idx >= 0 {
		return floor + idx
	}
	if idx := strings.LastIndexByte(window, '\n'); idx >= 0 {
		return floor + idx + 1
	}
	if idx := strings.LastIndexByte(window, ' '); idx >= 0 {
		return floor + idx + 1
	}
	return limit
}

// lastSentenceEnd returns the position just past the last sentence
// terminator followed by a space, or -1.
func lastSentenceEnd(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			if s[i+1] == ' ' || s[i+1] == '\n' {
				return i + 2
			}
		}
	}
	return -1
}

// wordBoundary moves pos forward to the nearest position not splitting
// a word, staying strictly before max so progress is preserved.
func wordBoundary(content string, pos, max int) int {
	if pos <= 0 || pos >= len(content) {
		return pos
	}
	// Already on a boundary.
	if content[pos-1] == ' ' || content[pos-1] == '\n' {
		return pos
	}
	for p := pos; p < max-1; p++ {
		if content[p] == ' ' || content[p] == '\n' {
			return p + 1
		}
	}
	return pos
}
