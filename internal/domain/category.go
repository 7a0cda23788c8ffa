package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category represents a product category in the catalog
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required,min=1,max=255"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category with is_active=true
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves an active category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// List retrieves all active categories
	List(ctx context.Context) ([]*Category, error)

	// Deactivate sets is_active=false and returns the deactivated category
	Deactivate(ctx context.Context, id uuid.UUID) (*Category, error)
}
