package repository

import (
	"context"

	"bento/internal/domain/entity"
	"bento/internal/errors"

	"github.com/google/uuid"
)

// ErrRestaurantNotFound is returned when a restaurant is not found.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository defines the interface for restaurant-related database operations.
type RestaurantRepository interface {
	// Create persists a new restaurant.
	Create(ctx context.Context, restaurant *entity.Restaurant) error

	// FindByID retrieves a restaurant by its unique ID, without its menu.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)

	// FindByIDWithMenu retrieves a restaurant together with its available menu items.
	FindByIDWithMenu(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)

	// List retrieves restaurants ordered by rating, newest first among equals.
	List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error)

	// FindByMerchant retrieves all restaurants owned by a merchant.
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Restaurant, error)
}
