// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant represents a store that publishes a menu and fulfils orders.
type Restaurant struct {
	ID          uuid.UUID   `json:"id"`          // The Global Unique Identifier (GUID) for the restaurant.
	MerchantID  uuid.UUID   `json:"merchant_id"` // The user (merchant role) who owns this restaurant.
	Name        string      `json:"name"`        // Public display name.
	Description string      `json:"description"` // Short description shown in listings.
	Address     string      `json:"address"`     // Full street address.
	Rating      float64     `json:"rating"`      // Aggregate review rating, 0 when unrated.
	Categories  []string    `json:"categories"`  // Cuisine categories, e.g. "ramen", "taiwanese".
	Menu        []*MenuItem `json:"menu"`        // The restaurant's menu items. May be partially loaded.
	CreatedAt   time.Time   `json:"created_at"`  // Timestamp of when the restaurant was registered.
	UpdatedAt   time.Time   `json:"updated_at"`  // Timestamp of the last modification.
}

// MenuItem represents one orderable entry on a restaurant's menu.
// PriceCents and IsAvailable are the only fields the order workflow trusts;
// caller-supplied prices are never accepted.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the menu item.
	RestaurantID uuid.UUID `json:"restaurant_id"` // The restaurant this item belongs to.
	Name         string    `json:"name"`          // Display name of the dish.
	Description  string    `json:"description"`   // Optional description.
	Category     string    `json:"category"`      // Menu section, e.g. "mains", "drinks".
	PriceCents   int64     `json:"price_cents"`   // Authoritative price in the smallest currency unit.
	IsAvailable  bool      `json:"is_available"`  // Whether the item can currently be ordered.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of when the item was added.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}
