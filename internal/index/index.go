// Package index provides the in-memory chunk index: an immutable
// snapshot of scored entries with atomic replacement on rebuild.
package index

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// Entry is a chunk plus its derived term statistics. Entries are built
// once per snapshot and never mutated.
type Entry struct {
	// Chunk is the indexed chunk.
	Chunk domain.Chunk

	// termFreq maps token to occurrence count within the chunk.
	termFreq map[string]int

	// tokens is the total token count of the chunk.
	tokens int
}

// Snapshot is an immutable index over a fixed set of chunks. Readers
// share snapshots freely; a rebuild produces a new one.
type Snapshot struct {
	entries []Entry

	// idf maps token to its smoothed inverse document frequency across
	// all entries.
	idf map[string]float64

	// docCount is the number of distinct source documents.
	docCount int

	// builtAt is when the snapshot was constructed.
	builtAt time.Time
}

// BuildSnapshot derives term statistics for the given chunks and
// returns an immutable snapshot. Build is all-or-nothing: the caller
// swaps the result in only after it is complete.
func BuildSnapshot(chunks []domain.Chunk) *Snapshot {
	entries := make([]Entry, 0, len(chunks))
	df := make(map[string]int)
	docs := make(map[string]struct{})

	for _, chunk := range chunks {
		tokens := Tokenise(chunk.Content)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			df[tok]++
		}
		docs[chunk.DocumentName] = struct{}{}
		entries = append(entries, Entry{
			Chunk:    chunk,
			termFreq: tf,
			tokens:   len(tokens),
		})
	}

	// Smoothed IDF so terms present in every chunk still contribute.
	n := float64(len(entries))
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log((1+n)/(1+float64(count))) + 1.0
	}

	return &Snapshot{
		entries:  entries,
		idf:      idf,
		docCount: len(docs),
		builtAt:  time.Now(),
	}
}

// Entries returns the snapshot's entries. The slice must not be
// mutated.
func (s *Snapshot) Entries() []Entry {
	return s.entries
}

// Len returns the number of indexed chunks.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// DocCount returns the number of distinct source documents.
func (s *Snapshot) DocCount() int {
	return s.docCount
}

// BuiltAt returns when the snapshot was constructed.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Score computes the relevance of an entry for the given query tokens.
// It is a pure function: identical inputs always yield the identical
// score, and a query sharing no tokens with the entry scores exactly 0,
// the minimum.
func (s *Snapshot) Score(queryTokens []string, e *Entry) float64 {
	if e.tokens == 0 || len(queryTokens) == 0 {
		return 0
	}
	var score float64
	for _, tok := range queryTokens {
		count, ok := e.termFreq[tok]
		if !ok {
			continue
		}
		tf := float64(count) / float64(e.tokens)
		score += tf * s.idf[tok]
	}
	return score
}

// Index holds the current snapshot. Swap is atomic: concurrent readers
// observe either the old or the new snapshot, never a partial one.
type Index struct {
	current atomic.Pointer[Snapshot]
}

// New creates an index holding an empty snapshot.
func New() *Index {
	idx := &Index{}
	idx.current.Store(BuildSnapshot(nil))
	return idx
}

// Snapshot returns the current snapshot.
func (i *Index) Snapshot() *Snapshot {
	return i.current.Load()
}

// Swap atomically replaces the current snapshot.
func (i *Index) Swap(s *Snapshot) {
	i.current.Store(s)
}
