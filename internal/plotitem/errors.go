package plotitem

import (
	"errors"
	"fmt"

	"github.com/joaquinabian/gnuplot-go/internal/tempfile"
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// Common errors.
var (
	ErrOption     = errors.New("invalid plot option")
	ErrClosed     = errors.New("plot item is closed")
	ErrShape      = tensor.ErrShape
	ErrConversion = tensor.ErrConversion
	ErrResource   = tempfile.ErrResource
)

// OptionError describes an unknown option key or an illegal value.
type OptionError struct {
	Kind   Kind   // Item kind the option was applied to
	Key    string // Option name
	Value  any    // Offending value
	Reason string // Why it was rejected
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %s=%#v for %s: %s", e.Key, e.Value, e.Kind, e.Reason)
}

// Unwrap lets errors.Is match ErrOption.
func (e *OptionError) Unwrap() error {
	return ErrOption
}
