package ports

import (
	"context"

	"github.com/order-wizard/ow-api/internal/domain/model"
)

// OrderRepository persists orders. All queries are scoped to the owning user;
// an order belonging to someone else is indistinguishable from a missing one.
type OrderRepository interface {
	Create(ctx context.Context, userID string, req model.CreateOrderRequest) (model.Order, error)
	Get(ctx context.Context, userID, orderID string) (model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	Update(ctx context.Context, userID, orderID string, req model.UpdateOrderRequest) (model.Order, error)
	Delete(ctx context.Context, userID, orderID string) error
}
