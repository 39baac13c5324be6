package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("forbidden")

	// ErrStatusConflict means the stored status changed between the
	// transition check and the update (two admins racing).
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// ValidationError reports a malformed or out-of-range order field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UnavailableProductError names the first line item whose product is
// missing from the catalog or flagged unavailable.
type UnavailableProductError struct {
	ProductID string
}

func (e *UnavailableProductError) Error() string {
	return fmt.Sprintf("product %s is not available", e.ProductID)
}

// TransitionError reports an illegal status move.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
