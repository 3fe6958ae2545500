package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is written before each line read by Interact.
const Prompt = "gnuplot> "

// Interact forwards lines from r to the engine until EOF or until ctx is
// done. If prompt is not nil a prompt is written before each line. Blank
// lines are skipped.
func (s *Session) Interact(ctx context.Context, r io.Reader, prompt io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != nil {
			if _, err := io.WriteString(prompt, Prompt); err != nil {
				return fmt.Errorf("failed to write prompt: %w", err)
			}
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := s.Command(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}
