package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

func passage(text, source string) domain.RetrievedPassage {
	return domain.RetrievedPassage{
		Chunk:  domain.Chunk{Content: text, DocumentName: source},
		Source: source,
	}
}

func TestFormat_Empty(t *testing.T) {
	f := NewCitationFormatter()

	got := f.Format(domain.RetrievalResult{Query: "anything"})
	assert.Equal(t, NoPassagesMarker, got)
}

func TestFormat_NumbersAndCites(t *testing.T) {
	f := NewCitationFormatter()
	result := domain.RetrievalResult{
		Passages: []domain.RetrievedPassage{
			passage("Returns are accepted within 30 days.", "policy.md"),
			passage("Standard shipping takes five business days.", "shipping.txt"),
		},
	}

	got := f.Format(result)
	assert.Contains(t, got, "[1] Returns are accepted within 30 days.")
	assert.Contains(t, got, "(source: policy.md)")
	assert.Contains(t, got, "[2] Standard shipping takes five business days.")
	assert.Contains(t, got, "(source: shipping.txt)")
}

func TestFormat_SanitisesControlSyntax(t *testing.T) {
	f := NewCitationFormatter()
	result := domain.RetrievalResult{
		Passages: []domain.RetrievedPassage{
			passage("Use {{name}} in <template> blocks:\n```\ncode\n```", "guide.md"),
		},
	}

	got := f.Format(result)
	assert.NotContains(t, got, "{")
	assert.NotContains(t, got, "}")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "```")
	assert.Contains(t, got, "((name))")
}

func TestFormat_CollapsesNewlines(t *testing.T) {
	f := NewCitationFormatter()
	result := domain.RetrievalResult{
		Passages: []domain.RetrievedPassage{
			passage("First line.\nSecond line.", "notes.txt"),
		},
	}

	got := f.Format(result)
	assert.Contains(t, got, "First line. Second line.")
}
