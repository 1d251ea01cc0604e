package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/index"
)

func testRetrieval(t *testing.T, chunks []domain.Chunk) *RetrievalService {
	t.Helper()
	idx := index.New()
	idx.Swap(index.BuildSnapshot(chunks))
	return NewRetrievalService(idx, nil, zap.NewNop())
}

func policyChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "p0", DocumentName: "policy.md", Position: 0,
			Content: "Returns are accepted within 30 days of purchase."},
		{ID: "p1", DocumentName: "policy.md", Position: 1,
			Content: "Refunds are issued to the original payment method within five business days."},
		{ID: "s0", DocumentName: "shipping.txt", Position: 0,
			Content: "Standard shipping takes five business days across the country."},
		{ID: "f0", DocumentName: "faq.txt", Position: 0,
			Content: "Gift cards never expire and can be combined with discount codes."},
	}
}

func TestSearch_FindsRelevantPassage(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	result, err := svc.Search(context.Background(), "How long are returns accepted?", domain.SearchOptions{})
	require.NoError(t, err)
	require.True(t, result.Found())

	assert.Equal(t, "policy.md", result.Passages[0].Source)
	assert.Contains(t, result.Passages[0].Chunk.Content, "Returns are accepted within 30 days")
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	for _, query := range []string{"", "   ", "\n\t"} {
		result, err := svc.Search(context.Background(), query, domain.SearchOptions{})
		require.NoError(t, err)
		assert.False(t, result.Found())
		assert.Empty(t, result.Passages)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	result, err := svc.Search(context.Background(), "quantum entanglement", domain.SearchOptions{})
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestSearch_EmptyIndex(t *testing.T) {
	svc := testRetrieval(t, nil)

	result, err := svc.Search(context.Background(), "returns", domain.SearchOptions{})
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestSearch_TopKLimit(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	result, err := svc.Search(context.Background(), "days business shipping returns",
		domain.SearchOptions{TopK: 2})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Passages), 2)
}

func TestSearch_ScoresNonIncreasing(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	result, err := svc.Search(context.Background(), "five business days", domain.SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.True(t, result.Found())

	for i := 1; i < len(result.Passages); i++ {
		assert.GreaterOrEqual(t, result.Passages[i-1].Score, result.Passages[i].Score)
	}
}

func TestSearch_MinScoreFloor(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	// An absurdly high floor drops everything.
	result, err := svc.Search(context.Background(), "returns",
		domain.SearchOptions{MinScore: 1e6})
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestSearch_CancelledContext(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, "returns", domain.SearchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexStats(t *testing.T) {
	svc := testRetrieval(t, policyChunks())

	docs, chunks, builtAt := svc.IndexStats()
	assert.Equal(t, 3, docs)
	assert.Equal(t, 4, chunks)
	assert.False(t, builtAt.IsZero())
}
