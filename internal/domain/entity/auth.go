package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies the authentication mechanism backing an Authentication record.
type ProviderType string

const (
	// ProviderTypeEmail is the email + password provider.
	ProviderTypeEmail ProviderType = "email"
)

// Authentication represents one way a user can prove their identity.
// A user may hold several records, one per provider.
type Authentication struct {
	ID             uuid.UUID    // The Global Unique Identifier (GUID) for this record.
	UserID         uuid.UUID    // The user this authentication method belongs to.
	Provider       ProviderType // Which provider this record represents.
	ProviderUserID string       // The identifier within the provider's namespace. For email this is the address itself.
	PasswordHash   string       // The bcrypt hash of the password. Empty for non-password providers.
	CreatedAt      time.Time    // Timestamp of when this record was created.
	UpdatedAt      time.Time    // Timestamp of the last modification.
}

// RefreshToken represents a long-lived session credential.
// Only the hash is persisted; the plaintext token lives solely on the client.
type RefreshToken struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for this token.
	UserID    uuid.UUID // The user this session belongs to.
	TokenHash string    // SHA-256 hash of the issued refresh token.
	ExpiresAt time.Time // Hard expiry; the token is rejected past this point regardless of JWT claims.
	CreatedAt time.Time // Timestamp of when the session was opened.
}
