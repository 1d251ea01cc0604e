package domain

import (
	"fmt"
	"strings"
	"time"
)

// Order is a Shopify order as surfaced to the dialogue engine.
type Order struct {
	// ID is the Shopify numeric order ID, as a string.
	ID string

	// Name is the human-facing order number, e.g. "#1001".
	Name string

	// Email is the customer email, if present on the order.
	Email string

	// FinancialStatus is the payment state ("paid", "pending", ...).
	FinancialStatus string

	// TotalPrice is the order total as returned by the API.
	TotalPrice string

	// Currency is the ISO currency code.
	Currency string

	// CreatedAt is when the order was placed.
	CreatedAt time.Time

	// LineItems are the purchased items.
	LineItems []LineItem
}

// LineItem is a single purchased item on an order.
type LineItem struct {
	Title    string
	Quantity int
}

// Summary renders the order as a short human-readable block suitable for
// a spoken reply. At most three line items are listed.
func (o Order) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", o.Name)
	fmt.Fprintf(&b, "Status: %s\n", o.FinancialStatus)
	fmt.Fprintf(&b, "Total: %s %s\n", o.TotalPrice, o.Currency)
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Placed: %s\n", o.CreatedAt.Format("January 2, 2006 15:04"))
	}

	if len(o.LineItems) > 0 {
		items := make([]string, 0, 3)
		for i, item := range o.LineItems {
			if i == 3 {
				break
			}
			items = append(items, fmt.Sprintf("%s x%d", item.Title, item.Quantity))
		}
		line := strings.Join(items, ", ")
		if len(o.LineItems) > 3 {
			line += fmt.Sprintf(" and %d more", len(o.LineItems)-3)
		}
		fmt.Fprintf(&b, "Items: %s", line)
	}

	return strings.TrimRight(b.String(), "\n")
}
