package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// SearchKnowledgeInput is the input schema for search_knowledge.
type SearchKnowledgeInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the store knowledge base"`
}

// PassageOutput is a single cited passage.
type PassageOutput struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// SearchKnowledgeOutput is the output schema for search_knowledge.
type SearchKnowledgeOutput struct {
	Passages []PassageOutput `json:"passages"`
	Found    bool            `json:"found"`
	Context  string          `json:"context"`
}

// LookupOrderByIDInput is the input schema for lookup_order_by_id.
type LookupOrderByIDInput struct {
	OrderID string `json:"order_id" jsonschema:"the Shopify order ID, or the order number prefixed with # (e.g. #1001)"`
}

// LookupOrdersByEmailInput is the input schema for lookup_orders_by_email.
type LookupOrdersByEmailInput struct {
	Email string `json:"email" jsonschema:"the customer email address"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of orders to return (default 5)"`
}

// ListRecentOrdersInput is the input schema for list_recent_orders.
type ListRecentOrdersInput struct {
	Count int `json:"count,omitempty" jsonschema:"number of recent orders to return (default 5)"`
}

// OrderOutput is a single order in a lookup result.
type OrderOutput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	FinancialStatus string `json:"financial_status"`
	TotalPrice      string `json:"total_price"`
	Currency        string `json:"currency"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// OrdersOutput is the output schema for the order lookup tools.
type OrdersOutput struct {
	Orders []OrderOutput `json:"orders"`
	Found  bool          `json:"found"`
	Detail string        `json:"detail"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(domain.ToolSearchKnowledge),
		Description: "Search the local store knowledge base and return cited passages",
	}, s.handleSearchKnowledge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(domain.ToolLookupOrderByID),
		Description: "Look up a single order by its Shopify order ID or #-prefixed order number",
	}, s.handleLookupOrderByID)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(domain.ToolLookupOrdersByEmail),
		Description: "List a customer's orders by email address",
	}, s.handleLookupOrdersByEmail)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(domain.ToolListRecentOrders),
		Description: "List the most recent orders",
	}, s.handleListRecentOrders)
}

// dispatch routes a call through the bridge. Malformed calls and
// timeouts come back as structured results, so they are surfaced in
// the output rather than as protocol errors: the dialogue turn
// continues either way.
func (s *Server) dispatch(ctx context.Context, name domain.ToolName, args any) (domain.ToolResult, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("encoding arguments: %w", err)
	}

	result := s.ports.Dispatcher.Dispatch(ctx, domain.ToolCall{
		Name:      name,
		Arguments: raw,
	})
	return result, nil
}

// handleSearchKnowledge handles the search_knowledge tool invocation.
func (s *Server) handleSearchKnowledge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchKnowledgeInput,
) (*mcp.CallToolResult, SearchKnowledgeOutput, error) {
	result, err := s.dispatch(ctx, domain.ToolSearchKnowledge, input)
	if err != nil {
		return nil, SearchKnowledgeOutput{}, err
	}

	output := SearchKnowledgeOutput{
		Passages: []PassageOutput{},
		Context:  result.Content,
	}
	if payload, ok := result.Payload.(*domain.SearchPayload); ok {
		output.Found = payload.Found
		for _, p := range payload.Passages {
			output.Passages = append(output.Passages, PassageOutput{
				Text:   p.Text,
				Source: p.Source,
			})
		}
	}

	return nil, output, nil
}

// handleLookupOrderByID handles the lookup_order_by_id tool invocation.
func (s *Server) handleLookupOrderByID(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupOrderByIDInput,
) (*mcp.CallToolResult, OrdersOutput, error) {
	result, err := s.dispatch(ctx, domain.ToolLookupOrderByID, input)
	if err != nil {
		return nil, OrdersOutput{}, err
	}
	return nil, ordersOutput(result), nil
}

// handleLookupOrdersByEmail handles the lookup_orders_by_email tool invocation.
func (s *Server) handleLookupOrdersByEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupOrdersByEmailInput,
) (*mcp.CallToolResult, OrdersOutput, error) {
	result, err := s.dispatch(ctx, domain.ToolLookupOrdersByEmail, input)
	if err != nil {
		return nil, OrdersOutput{}, err
	}
	return nil, ordersOutput(result), nil
}

// handleListRecentOrders handles the list_recent_orders tool invocation.
func (s *Server) handleListRecentOrders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecentOrdersInput,
) (*mcp.CallToolResult, OrdersOutput, error) {
	result, err := s.dispatch(ctx, domain.ToolListRecentOrders, input)
	if err != nil {
		return nil, OrdersOutput{}, err
	}
	return nil, ordersOutput(result), nil
}

// ordersOutput converts a bridge result to the order tool output shape.
func ordersOutput(result domain.ToolResult) OrdersOutput {
	output := OrdersOutput{
		Orders: []OrderOutput{},
		Detail: result.Content,
	}
	if payload, ok := result.Payload.(*domain.OrdersPayload); ok {
		output.Found = payload.Found
		for _, o := range payload.Orders {
			out := OrderOutput{
				ID:              o.ID,
				Name:            o.Name,
				Email:           o.Email,
				FinancialStatus: o.FinancialStatus,
				TotalPrice:      o.TotalPrice,
				Currency:        o.Currency,
			}
			if !o.CreatedAt.IsZero() {
				out.CreatedAt = o.CreatedAt.Format("2006-01-02 15:04")
			}
			output.Orders = append(output.Orders, out)
		}
	}
	return output
}
