package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound         = errors.New("resource not found")
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: session", ErrNotFound)
	ErrEmptyTable       = errors.New("table has no header row")
	ErrLengthMismatch   = errors.New("record count does not match row count")
	ErrUnsupportedInput = errors.New("unsupported spreadsheet format")
)

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
