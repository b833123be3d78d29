package usecase

import (
	"context"

	"bento/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderLineInput is one requested line of a new order. There is deliberately
// no price field: prices are read from the store inside the transaction.
type OrderLineInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput defines the data required to place an order.
// Duplicate menu item IDs are kept as separate lines, matching the literal
// request shape rather than inferring intent.
type CreateOrderInput struct {
	RestaurantID uuid.UUID        `json:"restaurant_id" validate:"required"`
	Items        []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

// OrderUsecase defines the interface for the order workflow.
type OrderUsecase interface {
	// CreateOrder validates and persists a new order atomically: either the
	// header and every line item are committed with a correct total, or
	// nothing is. Each call creates a new order; the operation is not
	// idempotent across retries.
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder retrieves an order. Customers see their own orders; the
	// restaurant's merchant sees orders placed against it.
	GetOrder(ctx context.Context, requesterID, orderID uuid.UUID) (*entity.Order, error)

	// ListUserOrders retrieves the requester's orders, newest first.
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// CancelOrder cancels a pending order on behalf of its owner. A committed
	// order is never rolled back; cancellation is a status transition.
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// UpdateOrderStatus performs a merchant-driven lifecycle transition and
	// publishes a status event on success.
	UpdateOrderStatus(ctx context.Context, merchantID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// GeneratePickupQR renders the pickup QR code for an order the requester owns.
	GeneratePickupQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
