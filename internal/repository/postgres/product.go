package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, stock, category_id, rating, is_active, created_at, updated_at`

// categoryIsActive reports whether the referenced category exists and is active.
func categoryIsActive(ctx context.Context, q sqlx.QueryerContext, categoryID uuid.UUID) (bool, error) {
	var active bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND is_active)`
	err := sqlx.GetContext(ctx, q, &active, query, categoryID)
	return active, err
}

// Create creates a new product. The owning category must be active,
// otherwise domain.ErrInvalidReference is returned and nothing is persisted.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	active, err := categoryIsActive(ctx, r.db, product.CategoryID)
	if err != nil {
		return err
	}
	if !active {
		return domain.ErrInvalidReference
	}

	query := `
		INSERT INTO products (name, description, price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rating, is_active, created_at, updated_at
	`

	now := time.Now()

	err = r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		now,
		now,
	).Scan(
		&product.ID,
		&product.Rating,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetByID retrieves a visible product. An active product under an inactive
// category is a referential inconsistency, reported as ErrInvalidReference
// rather than plain ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND is_active
	`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	active, err := categoryIsActive(ctx, r.db, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.ErrInvalidReference
	}

	return &product, nil
}

// List retrieves visible, in-stock products. Canonical listing policy:
// the category must be active and stock must be positive.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT p.` + joinedProductColumns() + `
		FROM products p
		JOIN categories c ON c.id = p.category_id AND c.is_active
		WHERE p.is_active AND p.stock > 0
		ORDER BY p.created_at DESC
	`

	var products []*domain.Product
	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// ListByCategory retrieves visible products in an active category.
// Returns ErrNotFound if the category itself is absent or inactive.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	active, err := categoryIsActive(ctx, r.db, categoryID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.ErrNotFound
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1 AND is_active
		ORDER BY created_at DESC
	`

	var products []*domain.Product
	err = r.db.SelectContext(ctx, &products, query, categoryID)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// Update replaces every settable field of a visible product. The rating
// column is derived and deliberately not part of the update.
//
// The target row is resolved before the category reference: a missing or
// inactive product reports ErrNotFound even when the named category is
// also inactive.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	var visible bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active)`
	if err := r.db.GetContext(ctx, &visible, existsQuery, product.ID); err != nil {
		return err
	}
	if !visible {
		return domain.ErrNotFound
	}

	active, err := categoryIsActive(ctx, r.db, product.CategoryID)
	if err != nil {
		return err
	}
	if !active {
		return domain.ErrInvalidReference
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5, updated_at = $6
		WHERE id = $7 AND is_active
		RETURNING rating, is_active, created_at, updated_at
	`

	err = r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		time.Now(),
		product.ID,
	).Scan(
		&product.Rating,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapError(err)
	}

	return nil
}

// Deactivate soft-deletes a product and returns the now-inactive row.
// The product's reviews are untouched and no rating recompute happens.
func (r *ProductRepository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	// Same visibility rules as GetByID: an inactive category makes the
	// target unreachable with ErrInvalidReference.
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2 AND is_active
		RETURNING is_active, updated_at
	`

	err = r.db.QueryRowxContext(ctx, query, time.Now(), id).Scan(&product.IsActive, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

func joinedProductColumns() string {
	return `id, p.name, p.description, p.price, p.stock, p.category_id, p.rating, p.is_active, p.created_at, p.updated_at`
}
