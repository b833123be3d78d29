package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice represents a mobile device registered for push notifications.
// Order status changes are delivered to every active device of the order's owner.
type UserDevice struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the registration.
	UserID    uuid.UUID `json:"user_id"`    // The user this device belongs to.
	FCMToken  string    `json:"fcm_token"`  // Firebase Cloud Messaging registration token.
	DeviceID  string    `json:"device_id"`  // Client-generated stable device identifier.
	Platform  string    `json:"platform"`   // "ios", "android" or "web".
	IsActive  bool      `json:"is_active"`  // Inactive devices are skipped when sending.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the device was registered.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last token refresh.
}
