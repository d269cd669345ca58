package complaint

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an absent complaint id; callers render an empty
// not-found view rather than an error.
var ErrNotFound = errors.New("complaint: not found")

// ValidationError reports a missing required submission field, handled
// inline next to the field.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("complaint: %s is required", e.Field)
}
