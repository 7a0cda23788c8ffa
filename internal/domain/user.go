package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles known to the authorization gate. The store accepts other values;
// they simply grant no review permissions.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User is the authenticated identity attached to a request. Account
// management and token issuance live in the identity service; this
// backend only reads users.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
