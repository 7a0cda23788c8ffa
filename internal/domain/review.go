package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review represents a buyer's review of a product. The grade bound [1,5]
// is enforced by the store CHECK constraint, not here, so an out-of-range
// grade always surfaces as ErrConstraintViolation.
type Review struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id" validate:"required"`
	Comment     *string   `json:"comment,omitempty" db:"comment"`
	CommentDate time.Time `json:"comment_date" db:"comment_date"`
	Grade       int       `json:"grade" db:"grade"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// ReviewRepository defines the interface for review data access.
//
// Create and Deactivate run the product rating recompute in the same
// transaction as the review write, so the stored rating always matches
// the mean grade of active reviews.
type ReviewRepository interface {
	// Create inserts a review for an active product and recomputes the
	// product's rating. Returns ErrInvalidReference if the product is
	// absent or inactive, ErrConstraintViolation if the store rejects
	// the grade.
	Create(ctx context.Context, review *Review) error

	// GetByID retrieves an active review by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// List retrieves all active reviews
	List(ctx context.Context) ([]*Review, error)

	// ListByProduct retrieves active reviews for a visible product
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)

	// Deactivate sets is_active=false, recomputes the product's rating
	// and returns the deactivated review
	Deactivate(ctx context.Context, id uuid.UUID) (*Review, error)
}
