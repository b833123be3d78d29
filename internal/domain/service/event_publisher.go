package service

import (
	"context"
)

// OrderEvent represents an order status change to be delivered to the
// notification worker. Publishing is fire-and-forget from the order
// workflow's perspective: a failed publish never affects persistence.
type OrderEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	OrderID      string `json:"order_id"`
	UserID       string `json:"user_id"` // The order owner, target of the push
	RestaurantID string `json:"restaurant_id"`
	Status       string `json:"status"`
	TotalCents   int64  `json:"total_cents"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order status event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
