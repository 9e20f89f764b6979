package transaction

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("transaction validation failed")

// ValidationError reports the first rule a record broke during construction.
type ValidationError struct {
	Kind   Kind
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s transaction: invalid %s %q: %s", e.Kind, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
