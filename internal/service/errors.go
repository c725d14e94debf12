package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError marks a malformed request that was rejected before any
// storage was touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// ProductNotFoundError is returned when a referenced product does not exist.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError is returned when a line item asks for more units
// than the locked product row holds.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// IsClientError reports whether err is an expected business-rule
// violation that should surface to the caller as a 4xx, as opposed to an
// infrastructure fault.
func IsClientError(err error) bool {
	var validation *ValidationError
	var notFound *ProductNotFoundError
	var stock *InsufficientStockError
	return errors.As(err, &validation) || errors.As(err, &notFound) || errors.As(err, &stock)
}
