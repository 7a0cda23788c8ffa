package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "stock", "category_id",
		"rating", "is_active", "created_at", "updated_at",
	})
}

func TestProductRepository_Create_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	product := &domain.Product{
		Name:       "Laptop",
		Price:      1200.50,
		Stock:      3,
		CategoryID: uuid.New(),
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.CategoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(product.Name, product.Description, product.Price, product.Stock,
			product.CategoryID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rating", "is_active", "created_at", "updated_at"}).
			AddRow(uuid.New(), 0.0, true, time.Now(), time.Now()))

	err := repo.Create(context.Background(), product)

	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.Zero(t, product.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_InactiveCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	product := &domain.Product{
		Name:       "Laptop",
		Price:      1200.50,
		Stock:      3,
		CategoryID: uuid.New(),
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.CategoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Create(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(productID).
		WillReturnRows(productRows().
			AddRow(productID, "Laptop", nil, 1200.50, 3, categoryID, 4.5, true, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	product, err := repo.GetByID(context.Background(), productID)

	require.NoError(t, err)
	assert.Equal(t, 4.5, product.Rating)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(productID).
		WillReturnRows(productRows())

	product, err := repo.GetByID(context.Background(), productID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_GetByID_InactiveCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(productID).
		WillReturnRows(productRows().
			AddRow(productID, "Laptop", nil, 1200.50, 3, categoryID, 4.5, true, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	product, err := repo.GetByID(context.Background(), productID)

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Nil(t, product)
}

func TestProductRepository_ListByCategory_InactiveCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	categoryID := uuid.New()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	products, err := repo.ListByCategory(context.Background(), categoryID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, products)
}

func TestProductRepository_List_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WillReturnRows(productRows().
			AddRow(uuid.New(), "Laptop", nil, 1200.50, 3, uuid.New(), 4.5, true, time.Now(), time.Now()).
			AddRow(uuid.New(), "Mouse", nil, 25.00, 100, uuid.New(), 0.0, true, time.Now(), time.Now()))

	products, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       "Laptop",
		Price:      999.99,
		Stock:      5,
		CategoryID: uuid.New(),
	}

	// The missing target short-circuits before the category is checked,
	// so NotFound wins even when the category is also inactive
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Update(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_InactiveCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       "Laptop",
		Price:      999.99,
		Stock:      5,
		CategoryID: uuid.New(),
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.CategoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Update(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       "Laptop",
		Price:      999.99,
		Stock:      5,
		CategoryID: uuid.New(),
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(product.CategoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("UPDATE products").
		WithArgs(product.Name, product.Description, product.Price, product.Stock,
			product.CategoryID, sqlmock.AnyArg(), product.ID).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "is_active", "created_at", "updated_at"}).
			AddRow(3.5, true, time.Now(), time.Now()))

	err := repo.Update(context.Background(), product)

	require.NoError(t, err)
	assert.Equal(t, 3.5, product.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Deactivate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	productID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(productID).
		WillReturnRows(productRows().
			AddRow(productID, "Laptop", nil, 1200.50, 3, categoryID, 4.5, true, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("UPDATE products").
		WithArgs(sqlmock.AnyArg(), productID).
		WillReturnRows(sqlmock.NewRows([]string{"is_active", "updated_at"}).
			AddRow(false, time.Now()))

	product, err := repo.Deactivate(context.Background(), productID)

	require.NoError(t, err)
	assert.False(t, product.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
