package driving

import (
	"context"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// RetrievalService answers queries against the in-memory chunk index.
type RetrievalService interface {
	// Search scores every indexed chunk against the query and returns
	// the top passages above the relevance floor, best first. An empty
	// result is a valid outcome, never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (domain.RetrievalResult, error)

	// Rebuild re-ingests the corpus and atomically replaces the index
	// snapshot. On failure the previous snapshot remains in effect.
	Rebuild(ctx context.Context) error
}
