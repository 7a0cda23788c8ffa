package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
)

// ratingRecomputeQuery rewrites a product's rating as the mean grade of
// its active reviews, 0 when none remain. Running it inside the same
// transaction as the review write keeps the stored rating consistent
// without a read-then-write race.
const ratingRecomputeQuery = `
	UPDATE products
	SET rating = COALESCE(
		(SELECT AVG(grade)
		 FROM reviews
		 WHERE product_id = $1 AND is_active),
		0
	),
	updated_at = NOW()
	WHERE id = $1
`

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, user_id, product_id, comment, comment_date, grade, is_active`

// Create inserts a review for an active product and recomputes the product
// rating, all in one transaction. A missing or inactive product yields
// domain.ErrInvalidReference; a grade outside [1,5] is rejected by the
// store's CHECK constraint as domain.ErrConstraintViolation.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var productActive bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active)`
	if err := tx.GetContext(ctx, &productActive, checkQuery, review.ProductID); err != nil {
		return err
	}
	if !productActive {
		return domain.ErrInvalidReference
	}

	insertQuery := `
		INSERT INTO reviews (user_id, product_id, comment, grade)
		VALUES ($1, $2, $3, $4)
		RETURNING id, comment_date, is_active
	`

	err = tx.QueryRowxContext(
		ctx,
		insertQuery,
		review.UserID,
		review.ProductID,
		review.Comment,
		review.Grade,
	).Scan(
		&review.ID,
		&review.CommentDate,
		&review.IsActive,
	)
	if err != nil {
		return mapError(err)
	}

	if _, err := tx.ExecContext(ctx, ratingRecomputeQuery, review.ProductID); err != nil {
		return fmt.Errorf("failed to recompute product rating: %w", err)
	}

	return tx.Commit()
}

// GetByID retrieves an active review by ID. Only the review's own flag is
// checked; the owning product's visibility is not consulted on read.
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1 AND is_active
	`

	var review domain.Review
	err := r.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &review, nil
}

// List retrieves all active reviews
func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE is_active
		ORDER BY comment_date DESC
	`

	var reviews []*domain.Review
	err := r.db.SelectContext(ctx, &reviews, query)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListByProduct retrieves active reviews for a visible product.
// Returns ErrNotFound if the product is absent or inactive.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	var productActive bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active)`
	if err := r.db.GetContext(ctx, &productActive, checkQuery, productID); err != nil {
		return nil, err
	}
	if !productActive {
		return nil, domain.ErrNotFound
	}

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1 AND is_active
		ORDER BY comment_date DESC
	`

	var reviews []*domain.Review
	if err := r.db.SelectContext(ctx, &reviews, query, productID); err != nil {
		return nil, err
	}

	return reviews, nil
}

// Deactivate soft-deletes a review and recomputes the product rating in
// the same transaction. Returns the now-inactive review.
func (r *ReviewRepository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE reviews
		SET is_active = FALSE
		WHERE id = $1 AND is_active
		RETURNING ` + reviewColumns + `
	`

	var review domain.Review
	err = tx.QueryRowxContext(ctx, query, id).StructScan(&review)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, ratingRecomputeQuery, review.ProductID); err != nil {
		return nil, fmt.Errorf("failed to recompute product rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &review, nil
}
