package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// stubNormaliser covers one kind without doing any work.
type stubNormaliser struct {
	kind domain.FileKind
}

func (s *stubNormaliser) Kind() domain.FileKind { return s.kind }

func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawFile) (*domain.Document, error) {
	return &domain.Document{Name: raw.Name, Kind: s.kind}, nil
}

func TestRegistry_ForKind(t *testing.T) {
	text := &stubNormaliser{kind: domain.KindText}
	md := &stubNormaliser{kind: domain.KindMarkdown}
	r := NewRegistry(text, md)

	got, err := r.ForKind(domain.KindText)
	require.NoError(t, err)
	assert.Same(t, text, got)

	got, err = r.ForKind(domain.KindMarkdown)
	require.NoError(t, err)
	assert.Same(t, md, got)
}

func TestRegistry_ForKindUnsupported(t *testing.T) {
	r := NewRegistry(&stubNormaliser{kind: domain.KindText})

	_, err := r.ForKind(domain.KindDocx)
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	first := &stubNormaliser{kind: domain.KindText}
	second := &stubNormaliser{kind: domain.KindText}
	r := NewRegistry(first, second)

	got, err := r.ForKind(domain.KindText)
	require.NoError(t, err)
	assert.Same(t, second, got)
}
