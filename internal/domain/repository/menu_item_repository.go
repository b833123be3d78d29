package repository

import (
	"context"

	"bento/internal/domain/entity"
	"bento/internal/errors"

	"github.com/google/uuid"
)

// ErrMenuItemNotFound is returned when a menu item is not found.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemRepository defines the interface for menu-item persistence.
type MenuItemRepository interface {
	// Create persists a new menu item.
	Create(ctx context.Context, item *entity.MenuItem) error

	// FindByID retrieves a menu item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// FindForOrder retrieves a menu item with a row-level locking read
	// (SELECT ... FOR UPDATE). It is only meaningful inside a transaction:
	// the lock is held until commit or rollback, so two concurrent orders
	// cannot both validate against a stale availability flag.
	FindForOrder(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// ListByRestaurant retrieves a restaurant's menu. When onlyAvailable is
	// set, items currently flagged unavailable are excluded.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]*entity.MenuItem, error)

	// UpdatePrice changes the authoritative price of a menu item.
	// Existing order lines keep their price snapshots.
	UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) error

	// UpdateAvailability flips the availability flag of a menu item.
	UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error
}
