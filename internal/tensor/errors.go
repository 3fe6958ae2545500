package tensor

import "errors"

// Common errors.
var (
	ErrConversion = errors.New("cannot convert input to a numeric tensor")
	ErrShape      = errors.New("shape mismatch")
)
