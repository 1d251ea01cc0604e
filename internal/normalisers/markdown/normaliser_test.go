package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

func normalise(t *testing.T, content string) string {
	t.Helper()
	doc, err := New().Normalise(context.Background(), &domain.RawFile{
		Name:    "doc.md",
		Kind:    domain.KindMarkdown,
		Content: []byte(content),
	})
	require.NoError(t, err)
	return doc.Content
}

func TestKind(t *testing.T) {
	assert.Equal(t, domain.KindMarkdown, New().Kind())
}

func TestNormalise_StripsHeadings(t *testing.T) {
	got := normalise(t, "# Returns\n\n## Policy\n\nReturns are accepted.")
	assert.Equal(t, "Returns\n\nPolicy\n\nReturns are accepted.", got)
}

func TestNormalise_StripsLinks(t *testing.T) {
	got := normalise(t, "See the [returns page](https://example.com/returns) for details.")
	assert.Equal(t, "See the returns page for details.", got)
}

func TestNormalise_StripsImages(t *testing.T) {
	got := normalise(t, "Diagram: ![flow chart](flow.png)")
	assert.Equal(t, "Diagram: flow chart", got)
}

func TestNormalise_StripsEmphasis(t *testing.T) {
	got := normalise(t, "Returns are **always** accepted within _30 days_.")
	assert.Equal(t, "Returns are always accepted within 30 days.", got)
}

func TestNormalise_StripsInlineCode(t *testing.T) {
	got := normalise(t, "Set `VOXCART_CORPUS_DIR` before starting.")
	assert.Equal(t, "Set VOXCART_CORPUS_DIR before starting.", got)
}

func TestNormalise_DropsFencedCode(t *testing.T) {
	got := normalise(t, "Before.\n\n```\nsecret config\n```\n\nAfter.")
	assert.NotContains(t, got, "secret config")
	assert.Contains(t, got, "Before.")
	assert.Contains(t, got, "After.")
}

func TestNormalise_StripsListMarkers(t *testing.T) {
	got := normalise(t, "- first item\n- second item\n1. numbered")
	assert.Equal(t, "first item\nsecond item\nnumbered", got)
}

func TestNormalise_StripsBlockquotesAndRules(t *testing.T) {
	got := normalise(t, "> quoted advice\n\n---\n\nplain text")
	assert.Equal(t, "quoted advice\n\nplain text", got)
}

func TestNormalise_NilFile(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	_, err := New().Normalise(context.Background(), &domain.RawFile{
		Name:    "bad.md",
		Content: []byte{0xff, 0xfe},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
