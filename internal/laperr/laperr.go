// Package laperr holds the error values shared by the lap-time packages.
package laperr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every validation failure: short paths,
// mismatched sequence lengths and non-positive physical parameters.
var ErrInvalidInput = errors.New("invalid input")

// Invalid returns an error wrapping ErrInvalidInput with a formatted detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
