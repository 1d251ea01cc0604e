package driven

import (
	"context"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// OrderService looks up orders from the external commerce API.
// All methods honour context cancellation and deadlines.
type OrderService interface {
	// GetOrderByID fetches a single order by its numeric ID.
	// Returns domain.ErrOrderNotFound when no such order exists.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// GetOrderByNumber fetches a single order by its human-facing
	// order number ("1001" or "#1001").
	// Returns domain.ErrOrderNotFound when no recent order matches.
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// SearchOrdersByEmail lists a customer's orders. The result may be
	// empty; that is not an error.
	SearchOrdersByEmail(ctx context.Context, email string, limit int) ([]domain.Order, error)

	// RecentOrders lists the most recently created orders.
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
}
