package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is absent or soft-deleted
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidReference is returned when a referenced parent entity is absent or inactive
	ErrInvalidReference = errors.New("invalid reference")

	// ErrForbidden is returned when an authorization predicate fails
	ErrForbidden = errors.New("forbidden")

	// ErrConstraintViolation is returned when the store rejects a value outside its allowed domain
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
