package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
)

// Calculator re-runs the product rating aggregate against the database.
// The request path already recomputes ratings transactionally; this is
// the reconciliation side, healing any product whose request died between
// commit and response.
type Calculator struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewCalculator creates a new rating calculator
func NewCalculator(db *sqlx.DB, logger *logger.Logger) *Calculator {
	return &Calculator{
		db:     db,
		logger: logger,
	}
}

// CalculateAndUpdate recalculates the mean grade of active reviews for a
// product and stores it. Idempotent: full recalculation from state, never
// an increment.
func (c *Calculator) CalculateAndUpdate(ctx context.Context, productID uuid.UUID) error {
	query := `
		UPDATE products
		SET
			rating = COALESCE(
				(SELECT AVG(grade)
				 FROM reviews
				 WHERE product_id = $1 AND is_active),
				0
			),
			updated_at = $2
		WHERE id = $1 AND is_active
	`

	result, err := c.db.ExecContext(ctx, query, productID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Product absent or deactivated: nothing to reconcile
	if rowsAffected == 0 {
		c.logger.WithFields(map[string]any{
			"product_id": productID.String(),
		}).Info("Product not found or inactive, skipping rating update")
		return nil
	}

	c.logger.WithFields(map[string]any{
		"product_id": productID.String(),
	}).Info("Product rating reconciled")

	return nil
}

// GetCurrentRating retrieves the stored rating for verification (used in tests)
func (c *Calculator) GetCurrentRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	var rating float64
	query := `SELECT rating FROM products WHERE id = $1 AND is_active`

	err := c.db.GetContext(ctx, &rating, query, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to get current rating: %w", err)
	}

	return rating, nil
}
