package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed means the restaurant has accepted the order.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusPreparing means the kitchen is working on the order.
	OrderStatusPreparing OrderStatus = "PREPARING"
	// OrderStatusDelivered means the order reached the customer.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled means the order was abandoned before delivery.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the table of legal status transitions.
// Delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusDelivered, OrderStatusCancelled},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Order is the aggregate root for a purchase: a header plus its owned line items,
// treated as one unit of consistency. TotalCents is always derived from the
// persisted line items, never supplied by the caller.
type Order struct {
	ID           uuid.UUID    `json:"id"`            // The Global Unique Identifier (GUID) for the order.
	UserID       uuid.UUID    `json:"user_id"`       // The customer who placed the order.
	RestaurantID uuid.UUID    `json:"restaurant_id"` // The restaurant fulfilling the order.
	Status       OrderStatus  `json:"status"`        // Current lifecycle state.
	TotalCents   int64        `json:"total_cents"`   // Sum of line totals at finalisation time.
	Items        []*OrderItem `json:"items"`         // Line items in request order.
	CreatedAt    time.Time    `json:"created_at"`    // Timestamp of when the order was placed.
	UpdatedAt    time.Time    `json:"updated_at"`    // Timestamp of the last status change.
}

// OrderItem is a single line of an order. PriceCents is a snapshot captured at
// order-creation time and never changes afterwards, even if the referenced
// menu item's price does.
type OrderItem struct {
	ID         uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the line.
	OrderID    uuid.UUID `json:"order_id"`     // The order this line belongs to.
	MenuItemID uuid.UUID `json:"menu_item_id"` // The menu item this line references.
	Quantity   int       `json:"quantity"`     // Positive number of units ordered.
	PriceCents int64     `json:"price_cents"`  // Per-unit price snapshot at validation time.
	CreatedAt  time.Time `json:"created_at"`   // Timestamp of when the line was written.
}

// LineTotalCents returns the line's contribution to the order total.
func (i *OrderItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}
