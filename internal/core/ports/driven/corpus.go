package driven

import (
	"context"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// CorpusSource enumerates raw files from the configured corpus location.
type CorpusSource interface {
	// Validate checks the source is usable. For the filesystem source
	// this verifies the corpus root exists and is readable. Returns
	// domain.ErrCorpusMissing when the root is absent.
	Validate(ctx context.Context) error

	// Enumerate walks the corpus and streams eligible files. The walk
	// is restartable: each call re-enumerates and reflects current
	// filesystem state. Unsupported extensions are skipped silently;
	// unreadable files are reported on the error channel as
	// *domain.IngestError and the walk continues. Both channels are
	// closed when the walk finishes.
	Enumerate(ctx context.Context) (<-chan domain.RawFile, <-chan error)
}
