// Package catalog orchestrates product and category operations against
// the activity policy: inactive rows and rows under inactive categories
// are invisible to every path here.
package catalog

import (
	"context"
	"errors"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/validator"
)

// Service handles catalog business logic
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	validate   *validatorv10.Validate
	logger     *logger.Logger
}

// NewService creates a new catalog service
func NewService(products domain.ProductRepository, categories domain.CategoryRepository, log *logger.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		validate:   validator.Get(),
		logger:     log,
	}
}

// CreateCategory creates a new active category
func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.validate.Struct(category); err != nil {
		s.logger.Error("Category validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category created")

	return nil
}

// ListCategories retrieves all active categories
func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", err)
		return nil, err
	}

	return categories, nil
}

// DeactivateCategory soft-deletes a category. Products under it stop being
// visible immediately; their rows and ratings are left as they are.
func (s *Service) DeactivateCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.Deactivate(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to deactivate category", err)
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"category_id": id,
	}).Info("Category deactivated")

	return category, nil
}

// CreateProduct creates a new active product under an active category
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.products.Create(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrInvalidReference) {
			s.logger.Error("Failed to create product", err)
		}
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id":  product.ID,
		"category_id": product.CategoryID,
		"name":        product.Name,
	}).Info("Product created")

	return nil
}

// GetProduct retrieves a visible product by ID
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Debugf("Product not found: %s", id)
		case errors.Is(err, domain.ErrInvalidReference):
			s.logger.Warnf("Product %s is active under an inactive category", id)
		default:
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves all visible products with positive stock
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	return products, nil
}

// ListProductsByCategory retrieves visible products in an active category
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to list products by category", err)
		}
		return nil, err
	}

	return products, nil
}

// UpdateProduct replaces all settable fields of a visible product
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.products.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrInvalidReference) {
			s.logger.Error("Failed to update product", err)
		}
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product updated")

	return nil
}

// DeactivateProduct soft-deletes a product and returns the inactive row.
// No rating or review recompute happens downstream.
func (s *Service) DeactivateProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.Deactivate(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrInvalidReference) {
			s.logger.Error("Failed to deactivate product", err)
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deactivated")

	return product, nil
}
