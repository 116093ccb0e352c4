package caseta

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a ticket id or record name does not exist.
// Callers wrap it with the missing key; test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input rejected before any
// mutation takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
