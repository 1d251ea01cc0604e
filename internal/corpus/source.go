// Package corpus provides the filesystem corpus source and the change
// watcher that triggers index rebuilds.
package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// kindByExt maps eligible file extensions to their kinds.
// Anything else is skipped, not an error.
var kindByExt = map[string]domain.FileKind{
	".txt":      domain.KindText,
	".md":       domain.KindMarkdown,
	".markdown": domain.KindMarkdown,
	".docx":     domain.KindDocx,
}

// Source enumerates corpus files under a root directory.
type Source struct {
	rootPath string
}

// New creates a filesystem corpus source for the given root.
func New(rootPath string) *Source {
	return &Source{rootPath: rootPath}
}

// RootPath returns the configured corpus root.
func (s *Source) RootPath() string {
	return s.rootPath
}

// Validate checks the corpus root exists and is a readable directory.
// A missing root is domain.ErrCorpusMissing, a fatal configuration
// error at startup.
func (s *Source) Validate(_ context.Context) error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrCorpusMissing
		}
		return err
	}
	if !info.IsDir() {
		return domain.ErrCorpusMissing
	}
	return nil
}

// Enumerate walks the corpus root and streams eligible files. Each call
// re-walks the tree, so the stream reflects current filesystem state.
// Unreadable files are reported as *domain.IngestError on the error
// channel and the walk continues. Both channels close when done.
func (s *Source) Enumerate(ctx context.Context) (<-chan domain.RawFile, <-chan error) {
	files := make(chan domain.RawFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		walkErr := filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				// Root-level walk failure aborts; per-entry failures
				// are skipped below via the read error path.
				if path == s.rootPath {
					return err
				}
				errs <- &domain.IngestError{File: path, Err: err}
				return nil
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != s.rootPath {
					return filepath.SkipDir
				}
				return nil
			}

			kind, ok := kindByExt[strings.ToLower(filepath.Ext(d.Name()))]
			if !ok {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				errs <- &domain.IngestError{File: path, Err: err}
				return nil
			}

			select {
			case files <- domain.RawFile{
				Path:    path,
				Name:    d.Name(),
				Kind:    kind,
				Content: content,
			}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if walkErr != nil && ctx.Err() == nil {
			if os.IsNotExist(walkErr) {
				walkErr = domain.ErrCorpusMissing
			}
			errs <- walkErr
		}
	}()

	return files, errs
}
