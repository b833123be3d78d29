package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. TotalCents is written once at the end
// of the order-creation transaction and only line rows ever contribute to it.
type OrderModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TotalCents   int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. PriceCents is the per-unit
// snapshot captured when the order was validated; menu price changes never
// touch these rows. LineNo is the zero-based position of the line in the
// original request, so reads restore request order even though batch-inserted
// rows share one created_at timestamp.
type OrderItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	LineNo     int       `gorm:"not null;default:0"`
	Quantity   int       `gorm:"not null;check:quantity > 0"`
	PriceCents int64     `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
