// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a unique "person" or "account".
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID              uuid.UUID        // The Global Unique Identifier (GUID) for the user.
	Email           string           // The user's primary contact email, used as a login identifier.
	Name            string           // The user's display name.
	LastLoginAt     *time.Time       // Timestamp of the most recent successful login. Nil until first login.
	UserProfile     *UserProfile     // A pointer to the customer-specific profile. Nil if this person never orders.
	MerchantProfile *MerchantProfile // A pointer to the merchant-specific profile. Nil if this person runs no restaurant.
	CreatedAt       time.Time        // Timestamp of when this account was created.
	UpdatedAt       time.Time        // Timestamp of the last modification to this user's data.
}

// UserProfile holds data specific to the "customer" role.
type UserProfile struct {
	UserID    uuid.UUID // Foreign Key that links this profile to a core User entity.
	AvatarURL string    // URL of the user's avatar image.
	Phone     string    // Contact phone number used for delivery coordination.
	Bio       string    // Free-form self description.
	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}

// MerchantProfile holds data specific to the "merchant" role.
type MerchantProfile struct {
	UserID          uuid.UUID // Foreign Key that links this profile to a core User entity.
	BusinessLicense string    // The merchant's official business license number.
	UpdatedAt       time.Time // Timestamp of the last modification to this profile.
}
