package entity

// Role represents a role a user can hold within the system.
// Roles are derived from the profiles attached to a User, never stored directly.
type Role string

const (
	// RoleUser marks an account that can browse restaurants and place orders.
	RoleUser Role = "user"
	// RoleMerchant marks an account that owns restaurants and manages menus and orders.
	RoleMerchant Role = "merchant"
)

// Roles is a collection of Role values.
type Roles []Role

// ToStrings converts the roles to plain strings for token claims.
func (r Roles) ToStrings() []string {
	out := make([]string, 0, len(r))
	for _, role := range r {
		out = append(out, string(role))
	}

	return out
}
