// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"bento/internal/domain/entity"
	"bento/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create persists a new user entity, including its attached profiles.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their unique ID, preloading profiles.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address, preloading profiles.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update modifies an existing user entity, including its attached profiles.
	Update(ctx context.Context, user *entity.User) error

	// UpdateLastLogin records the timestamp of a successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
