package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Summary(t *testing.T) {
	order := Order{
		Name:            "#1001",
		FinancialStatus: "paid",
		TotalPrice:      "59.90",
		Currency:        "EUR",
		CreatedAt:       time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		LineItems: []LineItem{
			{Title: "Espresso Beans", Quantity: 2},
			{Title: "Filter Papers", Quantity: 1},
		},
	}

	got := order.Summary()
	assert.Contains(t, got, "Order #1001")
	assert.Contains(t, got, "Status: paid")
	assert.Contains(t, got, "Total: 59.90 EUR")
	assert.Contains(t, got, "Placed: March 14, 2026 09:30")
	assert.Contains(t, got, "Espresso Beans x2, Filter Papers x1")
}

func TestOrder_SummaryTruncatesItems(t *testing.T) {
	order := Order{
		Name:            "#1002",
		FinancialStatus: "pending",
		TotalPrice:      "120.00",
		Currency:        "USD",
		LineItems: []LineItem{
			{Title: "A", Quantity: 1},
			{Title: "B", Quantity: 1},
			{Title: "C", Quantity: 1},
			{Title: "D", Quantity: 1},
			{Title: "E", Quantity: 1},
		},
	}

	got := order.Summary()
	assert.Contains(t, got, "and 2 more")
	assert.NotContains(t, got, "D x1")
}

func TestOrder_SummaryOmitsEmptySections(t *testing.T) {
	order := Order{Name: "#1003", FinancialStatus: "paid", TotalPrice: "5.00", Currency: "USD"}

	got := order.Summary()
	assert.NotContains(t, got, "Placed:")
	assert.NotContains(t, got, "Items:")
}

func TestToolName_IsValid(t *testing.T) {
	for _, name := range []ToolName{
		ToolSearchKnowledge, ToolLookupOrderByID, ToolLookupOrdersByEmail, ToolListRecentOrders,
	} {
		assert.True(t, name.IsValid(), string(name))
	}
	assert.False(t, ToolName("delete_everything").IsValid())
	assert.False(t, ToolName("").IsValid())
}
