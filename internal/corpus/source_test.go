package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, s *Source) (map[string]domain.RawFile, []error) {
	t.Helper()
	files, errs := s.Enumerate(context.Background())

	got := make(map[string]domain.RawFile)
	var gotErrs []error
	for files != nil || errs != nil {
		select {
		case f, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			got[f.Name] = f
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			gotErrs = append(gotErrs, err)
		}
	}
	return got, gotErrs
}

func TestValidate(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		s := New(t.TempDir())
		assert.NoError(t, s.Validate(context.Background()))
	})

	t.Run("missing directory", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "absent"))
		assert.ErrorIs(t, s.Validate(context.Background()), domain.ErrCorpusMissing)
	})

	t.Run("root is a file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "plain.txt", "content")
		s := New(filepath.Join(dir, "plain.txt"))
		assert.ErrorIs(t, s.Validate(context.Background()), domain.ErrCorpusMissing)
	})
}

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "policy.txt", "Returns within 30 days.")
	writeFile(t, dir, "guide.md", "# Shipping")
	writeFile(t, dir, "sub/faq.markdown", "Gift cards never expire.")
	writeFile(t, dir, "image.png", "binary")
	writeFile(t, dir, ".hidden/secret.txt", "skipped")

	got, errs := collect(t, New(dir))
	assert.Empty(t, errs)

	require.Len(t, got, 3)
	assert.Equal(t, domain.KindText, got["policy.txt"].Kind)
	assert.Equal(t, domain.KindMarkdown, got["guide.md"].Kind)
	assert.Equal(t, domain.KindMarkdown, got["faq.markdown"].Kind)
	assert.Equal(t, []byte("Returns within 30 days."), got["policy.txt"].Content)
	assert.Equal(t, filepath.Join(dir, "policy.txt"), got["policy.txt"].Path)
}

func TestEnumerate_UppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "NOTES.TXT", "Uppercase extension still counts.")

	got, errs := collect(t, New(dir))
	assert.Empty(t, errs)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindText, got["NOTES.TXT"].Kind)
}

func TestEnumerate_MissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"))

	got, errs := collect(t, s)
	assert.Empty(t, got)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrCorpusMissing)
}

func TestEnumerate_EmptyDirectory(t *testing.T) {
	got, errs := collect(t, New(t.TempDir()))
	assert.Empty(t, got)
	assert.Empty(t, errs)
}

func TestEnumerate_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one")
	writeFile(t, dir, "b.txt", "two")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, errs := New(dir).Enumerate(ctx)
	var got []domain.RawFile
	for f := range files {
		got = append(got, f)
	}
	for range errs {
	}
	assert.Empty(t, got)
}
