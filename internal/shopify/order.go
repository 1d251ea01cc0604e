package shopify

import (
	"strconv"
	"time"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// apiOrder is the wire shape of an order in the Admin REST API.
// Only the fields surfaced to the dialogue engine are decoded.
type apiOrder struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	FinancialStatus string        `json:"financial_status"`
	TotalPrice      string        `json:"total_price"`
	Currency        string        `json:"currency"`
	CreatedAt       string        `json:"created_at"`
	LineItems       []apiLineItem `json:"line_items"`
}

type apiLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// toDomain converts the wire order to the domain representation.
func (o *apiOrder) toDomain() domain.Order {
	order := domain.Order{
		ID:              formatID(o.ID),
		Name:            o.Name,
		Email:           o.Email,
		FinancialStatus: o.FinancialStatus,
		TotalPrice:      o.TotalPrice,
		Currency:        o.Currency,
	}

	if o.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, o.CreatedAt); err == nil {
			order.CreatedAt = t
		}
	}

	order.LineItems = make([]domain.LineItem, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		order.LineItems = append(order.LineItems, domain.LineItem{
			Title:    item.Title,
			Quantity: item.Quantity,
		})
	}

	return order
}

func toDomainOrders(orders []apiOrder) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		out = append(out, orders[i].toDomain())
	}
	return out
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
