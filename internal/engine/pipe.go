package engine

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/google/shlex"
)

// PipeProcess is a gnuplot child process fed through its stdin.
type PipeProcess struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	persist bool
	closed  bool
}

// StartPipe splits command shell-style, appends -persist if requested, and
// starts it. The engine's stderr is forwarded to ours so its error messages
// stay visible.
func StartPipe(command string, persist bool) (*PipeProcess, error) {
	argv, err := splitCommand(command)
	if err != nil {
		return nil, err
	}
	if persist {
		argv = append(argv, "-persist")
	}

	//nolint:gosec // G204: the engine command comes from configuration
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open engine stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	return &PipeProcess{cmd: cmd, stdin: stdin, persist: persist}, nil
}

// Write sends bytes to the engine's stdin.
func (p *PipeProcess) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrClosed
	}
	n, err := p.stdin.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write to engine: %w", err)
	}
	return n, nil
}

// SupportsPersist reports whether the process was started with -persist.
func (p *PipeProcess) SupportsPersist() bool {
	return p.persist
}

// Close closes stdin, which makes gnuplot exit, and waits for it.
func (p *PipeProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.stdin.Close(); err != nil {
		_ = p.cmd.Wait()
		return fmt.Errorf("failed to close engine stdin: %w", err)
	}
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("engine exited: %w", err)
	}
	return nil
}

func splitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse engine command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}
