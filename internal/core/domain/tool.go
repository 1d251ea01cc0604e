package domain

import "encoding/json"

// ToolName identifies a callable tool. The set is closed; dispatching an
// unknown name is a malformed call, never a silent no-op.
type ToolName string

// The tools exposed to the dialogue engine.
const (
	// ToolSearchKnowledge retrieves passages from the local corpus.
	ToolSearchKnowledge ToolName = "search_knowledge"

	// ToolLookupOrderByID fetches a single order by its Shopify ID.
	ToolLookupOrderByID ToolName = "lookup_order_by_id"

	// ToolLookupOrdersByEmail lists a customer's orders by email.
	ToolLookupOrdersByEmail ToolName = "lookup_orders_by_email"

	// ToolListRecentOrders lists the most recent orders.
	ToolListRecentOrders ToolName = "list_recent_orders"
)

// IsValid returns true if the tool name belongs to the closed set.
func (n ToolName) IsValid() bool {
	switch n {
	case ToolSearchKnowledge, ToolLookupOrderByID, ToolLookupOrdersByEmail, ToolListRecentOrders:
		return true
	default:
		return false
	}
}

// ToolCall is a structured request emitted by the dialogue engine.
// It is ephemeral, scoped to one dialogue turn.
type ToolCall struct {
	// ID is the correlation identifier. Results are matched to calls by
	// ID, never by completion order. Assigned by the bridge when empty.
	ID string

	// Name is the requested tool.
	Name ToolName

	// Arguments is the raw JSON argument object.
	Arguments json.RawMessage
}

// ToolStatus classifies the outcome of a tool call.
type ToolStatus string

// Tool call outcomes.
const (
	// ToolCompleted means the call produced a usable result.
	ToolCompleted ToolStatus = "completed"

	// ToolFailed means the call failed in a recoverable way; Content
	// carries a user-safe explanation.
	ToolFailed ToolStatus = "failed"

	// ToolTimedOut means the call exceeded its deadline.
	ToolTimedOut ToolStatus = "timed_out"

	// ToolMalformed means the call named an unknown tool or carried
	// invalid arguments.
	ToolMalformed ToolStatus = "malformed"
)

// ToolResult is the response to a ToolCall, formatted for re-injection
// into the conversation context.
type ToolResult struct {
	// CallID echoes the originating ToolCall.ID.
	CallID string

	// Name echoes the originating tool name.
	Name ToolName

	// Status classifies the outcome.
	Status ToolStatus

	// Content is the prompt-ready text for the dialogue engine. Always
	// populated, including for failures and timeouts, so the engine can
	// apologise and continue rather than hang the turn.
	Content string

	// Payload is the structured result for adapters that expose typed
	// tool schemas: *SearchPayload for search_knowledge, *OrdersPayload
	// for the order tools. Nil for malformed and timed-out calls.
	Payload any

	// Err is the underlying error for failed outcomes, nil otherwise.
	// It is diagnostic only and never crosses the tool boundary.
	Err error
}

// SearchPassage is one cited passage in a search_knowledge payload.
type SearchPassage struct {
	// Text is the sanitised passage text.
	Text string `json:"text"`

	// Source is the originating file name.
	Source string `json:"source"`
}

// SearchPayload is the structured result of search_knowledge.
type SearchPayload struct {
	Passages []SearchPassage `json:"passages"`
	Found    bool            `json:"found"`
}

// OrdersPayload is the structured result of the order lookup tools.
type OrdersPayload struct {
	Orders []Order `json:"orders"`
	Found  bool    `json:"found"`
}
