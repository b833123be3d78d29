package usecase

import (
	"context"

	"bento/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRestaurantInput defines the data required to register a restaurant.
type CreateRestaurantInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description"`
	Address     string   `json:"address" validate:"required"`
	Categories  []string `json:"categories"`
}

// AddMenuItemInput defines the data required to add a dish to a menu.
// The price here is the merchant-set authoritative price; customers can
// never influence it through the order API.
type AddMenuItemInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	IsAvailable bool   `json:"is_available"`
}

// RestaurantUsecase defines the interface for restaurant and menu management.
type RestaurantUsecase interface {
	// ListRestaurants retrieves a page of restaurants for browsing.
	ListRestaurants(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error)

	// GetRestaurant retrieves a restaurant with its available menu.
	GetRestaurant(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)

	// CreateRestaurant registers a new restaurant owned by the merchant.
	CreateRestaurant(ctx context.Context, merchantID uuid.UUID, input *CreateRestaurantInput) (*entity.Restaurant, error)

	// AddMenuItem adds a dish to a restaurant owned by the merchant.
	AddMenuItem(ctx context.Context, merchantID, restaurantID uuid.UUID, input *AddMenuItemInput) (*entity.MenuItem, error)

	// SetMenuItemPrice changes a dish's price. Past order lines keep their snapshots.
	SetMenuItemPrice(ctx context.Context, merchantID, itemID uuid.UUID, priceCents int64) error

	// SetMenuItemAvailability flips a dish's availability flag.
	SetMenuItemAvailability(ctx context.Context, merchantID, itemID uuid.UUID, available bool) error
}
