package repository

import (
	"context"

	"bento/internal/domain/entity"
	"bento/internal/errors"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a device registration is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines the interface for push-device persistence.
type DeviceRepository interface {
	// CreateDevice persists a new device registration.
	CreateDevice(ctx context.Context, device *entity.UserDevice) error

	// FindDevicesByUser retrieves all active devices for a user.
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// UpdateFCMToken refreshes the FCM token of an existing registration.
	UpdateFCMToken(ctx context.Context, id uuid.UUID, fcmToken string) error

	// DeactivateByTokens marks registrations with the given FCM tokens
	// inactive. Used to prune tokens Firebase reports as invalid.
	DeactivateByTokens(ctx context.Context, fcmTokens []string) error
}
