package product

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// ValidationError reports a rejected field on create/update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
