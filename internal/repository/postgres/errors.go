package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
)

// PostgreSQL error codes surfaced to the domain taxonomy.
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// mapError translates driver-level constraint failures into domain errors.
// Anything unrecognized is returned as-is.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeCheckViolation:
		return domain.ErrConstraintViolation
	case codeForeignKeyViolation:
		return domain.ErrInvalidReference
	default:
		return err
	}
}
