package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/chunker"
	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
	"github.com/nautilus-labs/voxcart/internal/index"
	"github.com/nautilus-labs/voxcart/internal/normalisers"
)

// IngestService runs the corpus → normaliser → chunker → index
// pipeline. Documents and chunks are created at build time and
// discarded together on the next rebuild.
type IngestService struct {
	source   driven.CorpusSource
	registry *normalisers.Registry
	chunker  *chunker.Chunker
	index    *index.Index
	log      *zap.Logger
}

// NewIngestService creates the ingestion pipeline.
func NewIngestService(
	source driven.CorpusSource,
	registry *normalisers.Registry,
	ch *chunker.Chunker,
	idx *index.Index,
	log *zap.Logger,
) *IngestService {
	return &IngestService{
		source:   source,
		registry: registry,
		chunker:  ch,
		index:    idx,
		log:      log,
	}
}

// Build ingests the whole corpus and atomically swaps the resulting
// snapshot into the index. Per-file failures are logged and skipped;
// a corpus-level failure (missing root, cancelled context) aborts the
// build and leaves the previous snapshot in effect.
func (s *IngestService) Build(ctx context.Context) error {
	if err := s.source.Validate(ctx); err != nil {
		return err
	}

	files, errs := s.source.Enumerate(ctx)

	var chunks []domain.Chunk
	var docs, skipped int

	for files != nil || errs != nil {
		select {
		case raw, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			doc, err := s.normalise(ctx, &raw)
			if err != nil {
				skipped++
				s.log.Warn("skipping unreadable corpus file",
					zap.String("file", raw.Name), zap.Error(err))
				continue
			}
			docChunks := s.chunker.Chunk(*doc)
			chunks = append(chunks, docChunks...)
			docs++
			s.log.Debug("ingested document",
				zap.String("file", doc.Name),
				zap.Int("chunks", len(docChunks)))

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			var ingestErr *domain.IngestError
			if errors.As(err, &ingestErr) {
				skipped++
				s.log.Warn("skipping unreadable corpus file",
					zap.String("file", ingestErr.File), zap.Error(ingestErr.Err))
				continue
			}
			// Corpus-level failure: abort, keep the old snapshot.
			return fmt.Errorf("enumerating corpus: %w", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// Stable chunk order keeps rebuilds on an unchanged corpus
	// functionally identical.
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].DocumentName != chunks[j].DocumentName {
			return chunks[i].DocumentName < chunks[j].DocumentName
		}
		return chunks[i].Position < chunks[j].Position
	})

	snapshot := index.BuildSnapshot(chunks)
	s.index.Swap(snapshot)

	s.log.Info("index built",
		zap.Int("documents", docs),
		zap.Int("chunks", len(chunks)),
		zap.Int("skipped", skipped))
	return nil
}

// normalise picks the normaliser for the file kind and runs it.
func (s *IngestService) normalise(ctx context.Context, raw *domain.RawFile) (*domain.Document, error) {
	norm, err := s.registry.ForKind(raw.Kind)
	if err != nil {
		return nil, err
	}
	doc, err := norm.Normalise(ctx, raw)
	if err != nil {
		return nil, &domain.IngestError{File: raw.Name, Err: err}
	}
	return doc, nil
}
