package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repository and service layers. Handlers map
// them onto HTTP statuses; anything that does not match is treated as a
// store failure.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateCode     = errors.New("code already in use")
	ErrConflictInUse     = errors.New("record is still referenced by transactions")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError marks input rejected at the boundary (missing field,
// inconsistent customer type pairing, mismatched line total).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
