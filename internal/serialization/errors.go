package serialization

import (
	"errors"
	"fmt"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// Common errors.
var (
	ErrShape     = tensor.ErrShape
	ErrTruncated = errors.New("truncated data")
	ErrFormat    = errors.New("malformed data")
)

// FormatError provides detailed information about a decoding failure.
type FormatError struct {
	Type    string // Type of error (e.g., "bad_number", "bad_header")
	Line    int    // 1-based line number for text input, 0 if not applicable
	Details string // Additional details
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Type, e.Line, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap lets errors.Is match ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}
