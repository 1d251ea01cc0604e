package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driving"
	"github.com/nautilus-labs/voxcart/internal/index"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the result limit when the caller passes none.
const DefaultTopK = 5

// RetrievalService answers queries against the current index snapshot.
// Searches are read-only over an immutable snapshot, so concurrent
// searches need no mutual exclusion.
type RetrievalService struct {
	index  *index.Index
	ingest *IngestService
	log    *zap.Logger
}

// NewRetrievalService creates a retrieval service over the given index.
// ingest is used for rebuilds.
func NewRetrievalService(idx *index.Index, ingest *IngestService, log *zap.Logger) *RetrievalService {
	return &RetrievalService{
		index:  idx,
		ingest: ingest,
		log:    log,
	}
}

// Search scores every indexed chunk against the query, sorts by score
// descending (ties broken by chunk position, then document name),
// truncates to TopK, and drops entries below the relevance floor.
// No results is a valid outcome, never an error.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (domain.RetrievalResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RetrievalResult{}, err
	}

	query = strings.TrimSpace(query)
	result := domain.RetrievalResult{Query: query}
	if query == "" {
		s.log.Debug("empty query, returning no passages")
		return result, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	snapshot := s.index.Snapshot()
	queryTokens := index.Tokenise(query)

	entries := snapshot.Entries()
	passages := make([]domain.RetrievedPassage, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		score := snapshot.Score(queryTokens, e)
		if score <= 0 {
			continue
		}
		passages = append(passages, domain.RetrievedPassage{
			Chunk:  e.Chunk,
			Score:  score,
			Source: e.Chunk.DocumentName,
		})
	}

	sort.SliceStable(passages, func(i, j int) bool {
		if passages[i].Score != passages[j].Score {
			return passages[i].Score > passages[j].Score
		}
		if passages[i].Chunk.Position != passages[j].Chunk.Position {
			return passages[i].Chunk.Position < passages[j].Chunk.Position
		}
		return passages[i].Source < passages[j].Source
	})

	if len(passages) > topK {
		passages = passages[:topK]
	}
	for len(passages) > 0 && passages[len(passages)-1].Score < opts.MinScore {
		passages = passages[:len(passages)-1]
	}

	result.Passages = passages
	s.log.Debug("search complete",
		zap.String("query", query),
		zap.Int("passages", len(passages)),
		zap.Int("indexed_chunks", snapshot.Len()))
	return result, nil
}

// Rebuild re-ingests the corpus. On failure the previous snapshot
// remains in effect; concurrent searches never observe partial state.
func (s *RetrievalService) Rebuild(ctx context.Context) error {
	return s.ingest.Build(ctx)
}

// IndexStats reports the current snapshot's document and chunk counts
// and build time.
func (s *RetrievalService) IndexStats() (documents, chunks int, builtAt time.Time) {
	snapshot := s.index.Snapshot()
	return snapshot.DocCount(), snapshot.Len(), snapshot.BuiltAt()
}
