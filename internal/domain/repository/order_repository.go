package repository

import (
	"context"

	"bento/internal/domain/entity"
	"bento/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusConflict is returned when a conditional status update
	// matched no row, meaning the order moved concurrently.
	ErrOrderStatusConflict = errors.New("order status changed concurrently")
)

// OrderRepository defines the interface for order-related database operations.
// The multi-step write methods (CreateOrder, CreateOrderItems, SumOrderItems,
// UpdateOrderTotal) are designed to be called inside a single transaction via
// the TransactionManager so the order aggregate is persisted atomically.
type OrderRepository interface {
	// CreateOrder persists an order header. The entity's ID and timestamps
	// are filled in from the generated row.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// CreateOrderItems persists all line items of an order in request order.
	CreateOrderItems(ctx context.Context, orderID uuid.UUID, items []*entity.OrderItem) error

	// SumOrderItems recomputes the order total from the persisted line rows.
	// Reading back what was written guards against mid-transaction skew.
	SumOrderItems(ctx context.Context, orderID uuid.UUID) (int64, error)

	// UpdateOrderTotal writes the final derived total onto the order header.
	UpdateOrderTotal(ctx context.Context, orderID uuid.UUID, totalCents int64) error

	// FindOrderByID retrieves an order with its line items.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrdersByUser retrieves all orders placed by a user, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindOrdersByRestaurant retrieves all orders for a restaurant, newest first.
	FindOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.Order, error)

	// UpdateOrderStatus performs a conditional transition from one status to
	// another. If the order is no longer in the expected status the update
	// matches no row and ErrOrderStatusConflict is returned.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}
