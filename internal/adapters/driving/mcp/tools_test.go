package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// fakeDispatcher records calls and returns a canned result.
type fakeDispatcher struct {
	lastCall domain.ToolCall
	result   domain.ToolResult
}

func (f *fakeDispatcher) Dispatch(_ context.Context, call domain.ToolCall) domain.ToolResult {
	f.lastCall = call
	result := f.result
	result.CallID = call.ID
	result.Name = call.Name
	return result
}

func (f *fakeDispatcher) Submit(ctx context.Context, call domain.ToolCall) <-chan domain.ToolResult {
	results := make(chan domain.ToolResult, 1)
	results <- f.Dispatch(ctx, call)
	close(results)
	return results
}

// fakeStats returns fixed index statistics.
type fakeStats struct{}

func (fakeStats) IndexStats() (int, int, time.Time) {
	return 3, 12, time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, dispatcher *fakeDispatcher) *Server {
	t.Helper()
	s, err := NewServer(&Ports{Dispatcher: dispatcher, Stats: fakeStats{}})
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresDispatcher(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingDispatcher)
}

func TestHandleSearchKnowledge(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.ToolResult{
		Status:  domain.ToolCompleted,
		Content: "Relevant passages from the knowledge base: ...",
		Payload: &domain.SearchPayload{
			Found: true,
			Passages: []domain.SearchPassage{
				{Text: "Returns are accepted within 30 days.", Source: "policy.md"},
			},
		},
	}}
	s := newTestServer(t, dispatcher)

	_, output, err := s.handleSearchKnowledge(context.Background(), nil,
		SearchKnowledgeInput{Query: "returns"})
	require.NoError(t, err)

	assert.Equal(t, domain.ToolSearchKnowledge, dispatcher.lastCall.Name)
	assert.JSONEq(t, `{"query": "returns"}`, string(dispatcher.lastCall.Arguments))

	assert.True(t, output.Found)
	require.Len(t, output.Passages, 1)
	assert.Equal(t, "policy.md", output.Passages[0].Source)
	assert.Contains(t, output.Context, "Relevant passages")
}

func TestHandleSearchKnowledge_NoPayload(t *testing.T) {
	// Timed-out and malformed calls carry no payload; the handler still
	// returns a well-formed output with the fallback text.
	dispatcher := &fakeDispatcher{result: domain.ToolResult{
		Status:  domain.ToolTimedOut,
		Content: "The lookup took too long to complete.",
	}}
	s := newTestServer(t, dispatcher)

	_, output, err := s.handleSearchKnowledge(context.Background(), nil,
		SearchKnowledgeInput{Query: "returns"})
	require.NoError(t, err)

	assert.False(t, output.Found)
	assert.Empty(t, output.Passages)
	assert.NotNil(t, output.Passages)
	assert.Contains(t, output.Context, "too long")
}

func TestHandleLookupOrderByID(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.ToolResult{
		Status:  domain.ToolCompleted,
		Content: "Order #1001",
		Payload: &domain.OrdersPayload{
			Found: true,
			Orders: []domain.Order{{
				ID:              "450789469",
				Name:            "#1001",
				FinancialStatus: "paid",
				TotalPrice:      "42.00",
				Currency:        "EUR",
				CreatedAt:       time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
			}},
		},
	}}
	s := newTestServer(t, dispatcher)

	_, output, err := s.handleLookupOrderByID(context.Background(), nil,
		LookupOrderByIDInput{OrderID: "450789469"})
	require.NoError(t, err)

	assert.Equal(t, domain.ToolLookupOrderByID, dispatcher.lastCall.Name)
	assert.True(t, output.Found)
	require.Len(t, output.Orders, 1)
	assert.Equal(t, "#1001", output.Orders[0].Name)
	assert.Equal(t, "2026-03-14 09:30", output.Orders[0].CreatedAt)
	assert.Equal(t, "Order #1001", output.Detail)
}

func TestHandleLookupOrdersByEmail(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.ToolResult{
		Status:  domain.ToolCompleted,
		Content: "No orders were found for nobody@example.com.",
		Payload: &domain.OrdersPayload{Found: false},
	}}
	s := newTestServer(t, dispatcher)

	_, output, err := s.handleLookupOrdersByEmail(context.Background(), nil,
		LookupOrdersByEmailInput{Email: "nobody@example.com", Limit: 3})
	require.NoError(t, err)

	var args map[string]any
	require.NoError(t, json.Unmarshal(dispatcher.lastCall.Arguments, &args))
	assert.Equal(t, "nobody@example.com", args["email"])
	assert.Equal(t, float64(3), args["limit"])

	assert.False(t, output.Found)
	assert.Empty(t, output.Orders)
	assert.NotNil(t, output.Orders)
}

func TestHandleListRecentOrders(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.ToolResult{
		Status:  domain.ToolFailed,
		Content: "Order lookups are not configured for this store.",
		Payload: &domain.OrdersPayload{Found: false},
	}}
	s := newTestServer(t, dispatcher)

	_, output, err := s.handleListRecentOrders(context.Background(), nil,
		ListRecentOrdersInput{Count: 5})
	require.NoError(t, err)

	assert.Equal(t, domain.ToolListRecentOrders, dispatcher.lastCall.Name)
	assert.False(t, output.Found)
	assert.Contains(t, output.Detail, "not configured")
}
