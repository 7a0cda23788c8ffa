package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog. Rating is derived from
// active reviews and never written directly by callers.
//
// A product is visible only while both its own is_active flag and the
// owning category's flag are true.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price" validate:"gte=0"`
	Stock       int       `json:"stock" db:"stock" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id" validate:"required"`
	Rating      float64   `json:"rating" db:"rating"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product; the category must be active
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a visible product. Returns ErrNotFound if the
	// product is absent or inactive, ErrInvalidReference if the product
	// is active but its category is not.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves visible products with positive stock
	List(ctx context.Context) ([]*Product, error)

	// ListByCategory retrieves visible products in an active category
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)

	// Update replaces all settable fields of a visible product
	Update(ctx context.Context, product *Product) error

	// Deactivate sets is_active=false and returns the deactivated product
	Deactivate(ctx context.Context, id uuid.UUID) (*Product, error)
}
