package engine

import (
	"fmt"
	"os"
	"sync"
)

// FileProcess appends commands to a file instead of running gnuplot. The
// result can be replayed later with gnuplot's load command, as long as the
// scratch files it references still exist.
type FileProcess struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenFile creates (or truncates) the command log at path.
func OpenFile(path string) (*FileProcess, error) {
	//nolint:gosec // G304: command log path comes from configuration
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create command log: %w", err)
	}
	return &FileProcess{file: f}, nil
}

// Write appends bytes to the log.
func (p *FileProcess) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrClosed
	}
	n, err := p.file.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write command log: %w", err)
	}
	return n, nil
}

// SupportsPersist is always false: nothing is displayed.
func (p *FileProcess) SupportsPersist() bool {
	return false
}

// Close closes the log.
func (p *FileProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.file.Close()
}
