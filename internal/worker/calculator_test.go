package worker

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
)

func newCalculator(t *testing.T) (*Calculator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewCalculator(sqlxDB, logger.New("test")), mock
}

func TestCalculator_CalculateAndUpdate_Success(t *testing.T) {
	calculator, mock := newCalculator(t)

	productID := uuid.New()

	mock.ExpectExec("UPDATE products").
		WithArgs(productID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := calculator.CalculateAndUpdate(context.Background(), productID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculator_CalculateAndUpdate_ProductInactive(t *testing.T) {
	calculator, mock := newCalculator(t)

	productID := uuid.New()

	// Deactivated product: 0 rows affected, not an error
	mock.ExpectExec("UPDATE products").
		WithArgs(productID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := calculator.CalculateAndUpdate(context.Background(), productID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculator_CalculateAndUpdate_ContextTimeout(t *testing.T) {
	calculator, mock := newCalculator(t)

	productID := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	mock.ExpectExec("UPDATE products").
		WithArgs(productID, sqlmock.AnyArg()).
		WillDelayFor(100 * time.Millisecond).
		WillReturnResult(sqlmock.NewResult(0, 1))

	time.Sleep(10 * time.Millisecond)

	err := calculator.CalculateAndUpdate(ctx, productID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}

func TestCalculator_GetCurrentRating_Success(t *testing.T) {
	calculator, mock := newCalculator(t)

	productID := uuid.New()
	expectedRating := 4.5

	mock.ExpectQuery("SELECT rating FROM products").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(expectedRating))

	rating, err := calculator.GetCurrentRating(context.Background(), productID)

	assert.NoError(t, err)
	assert.Equal(t, expectedRating, rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
