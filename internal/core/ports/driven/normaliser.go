package driven

import (
	"context"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// Normaliser extracts normalised text from a raw corpus file.
// Each normaliser handles one file kind.
type Normaliser interface {
	// Kind returns the file kind this normaliser handles.
	Kind() domain.FileKind

	// Normalise transforms a raw file into a Document with normalised
	// Content. Chunking is handled downstream.
	Normalise(ctx context.Context, raw *domain.RawFile) (*domain.Document, error)
}
