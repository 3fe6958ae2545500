package session

import (
	"errors"
	"fmt"

	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
)

// Common errors.
var (
	ErrClosed  = errors.New("session is closed")
	ErrNoItems = errors.New("no active plot items")
	ErrOption  = plotitem.ErrOption
)

// TerminalError rejects a hardcopy terminal or one of its options.
type TerminalError struct {
	Terminal string
	Key      string
	Value    any
	Reason   string
}

// Error implements the error interface.
func (e *TerminalError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("terminal %q: %s", e.Terminal, e.Reason)
	}
	return fmt.Sprintf("terminal %q option %s=%v: %s", e.Terminal, e.Key, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrOption.
func (e *TerminalError) Unwrap() error {
	return ErrOption
}
