package repository

import (
	"context"

	"bento/internal/domain/entity"
	"bento/internal/errors"
)

// ErrAuthNotFound is returned when no authentication record matches.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines the interface for authentication-method persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication record for a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication record by provider and
	// provider-scoped user identifier (the email address for the email provider).
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)
}
