package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

func TestKind(t *testing.T) {
	assert.Equal(t, domain.KindText, New().Kind())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawFile{
		Name:    "policy.txt",
		Kind:    domain.KindText,
		Content: []byte("Returns are accepted within 30 days of purchase."),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "policy.txt", doc.Name)
	assert.Equal(t, domain.KindText, doc.Kind)
	assert.Equal(t, "Returns are accepted within 30 days of purchase.", doc.Content)
	assert.False(t, doc.IngestedAt.IsZero())
}

func TestNormalise_NormalisesWhitespace(t *testing.T) {
	raw := &domain.RawFile{
		Name:    "messy.txt",
		Content: []byte("line one   \r\n\r\n\r\n\r\nline  two"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "line one\n\nline two", doc.Content)
}

func TestNormalise_NilFile(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	raw := &domain.RawFile{
		Name:    "binary.txt",
		Content: []byte{0xff, 0xfe, 0x00, 0x41},
	}

	_, err := New().Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
