package plaintext

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
	"github.com/nautilus-labs/voxcart/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text files.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the file kind this normaliser handles.
func (n *Normaliser) Kind() domain.FileKind {
	return domain.KindText
}

// Normalise converts a raw text file to a normalised document keyed by
// file name. Chunking is handled downstream.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawFile) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, domain.ErrInvalidInput
	}

	return &domain.Document{
		Name:       raw.Name,
		Kind:       domain.KindText,
		Content:    normalisers.NormaliseWhitespace(string(raw.Content)),
		IngestedAt: time.Now(),
	}, nil
}
