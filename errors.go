package yieldbook

import "errors"

// Validation errors are returned before any state is changed.
var (
	// ErrInvalidInput indicates numeric arguments out of the calculator's
	// domain: a non finite value or a non positive purchase net value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFormat indicates an import document without the required
	// "products" and "records" arrays.
	ErrInvalidFormat = errors.New("invalid import format")
)

// ErrNotFound indicates that no product matches the given id.
var ErrNotFound = errors.New("product not found")
