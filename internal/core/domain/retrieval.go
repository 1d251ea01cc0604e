package domain

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// TopK is the maximum number of passages to return.
	TopK int

	// MinScore is the relevance floor. Passages scoring below it are
	// dropped after truncation to TopK.
	MinScore float64
}

// RetrievedPassage is a single retrieval hit.
type RetrievedPassage struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the relevance score.
	Score float64

	// Source is the owning document's file name (the citation key).
	Source string
}

// RetrievalResult is an ordered sequence of passages with non-increasing
// scores. An empty result is a valid, non-exceptional outcome.
type RetrievalResult struct {
	// Passages are the hits, best first.
	Passages []RetrievedPassage

	// Query is the normalised query that produced this result.
	Query string
}

// Found returns true if the result contains at least one passage.
func (r RetrievalResult) Found() bool {
	return len(r.Passages) > 0
}
