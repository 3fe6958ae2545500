// Package engine connects a session to a gnuplot process.
//
// A Process is the whole contract a session needs: a byte sink for
// commands and data, whether the engine can keep windows open after it
// exits, and a way to shut it down. Variants are chosen by configuration
// (Open), not by the platform the binary was built for.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/joaquinabian/gnuplot-go/internal/config"
)

// Common errors.
var (
	ErrClosed             = errors.New("engine process is closed")
	ErrPersistUnsupported = errors.New("-persist is not supported by this gnuplot")
	ErrEmptyCommand       = errors.New("empty engine command")
)

// Process is a one-way channel to a gnuplot engine.
type Process interface {
	// Write sends raw bytes. Callers write whole command sequences at once.
	Write(p []byte) (int, error)

	// SupportsPersist reports whether the engine keeps plot windows open
	// after it exits.
	SupportsPersist() bool

	// Close ends the process. It is safe to call more than once.
	Close() error
}

// Open starts the process variant selected by cfg.Transport.
func Open(ctx context.Context, cfg config.Config) (Process, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Transport {
	case config.TransportFile:
		return OpenFile(cfg.CommandLog)
	case config.TransportPipe:
		persist := false
		if cfg.Persist {
			persist = cfg.RecognizesPersist || ProbePersist(ctx, cfg.Command)
			if !persist {
				return nil, fmt.Errorf("%w: %s", ErrPersistUnsupported, cfg.Command)
			}
		}
		return StartPipe(cfg.Command, persist)
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", config.ErrInvalid, cfg.Transport)
	}
}
