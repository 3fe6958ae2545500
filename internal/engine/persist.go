package engine

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// probeTimeout bounds the -persist probe.
const probeTimeout = 5 * time.Second

var persistCache sync.Map // command string -> bool

// ProbePersist runs the engine once with -persist and an empty script and
// reports whether it accepted the flag. Results are cached per command.
func ProbePersist(ctx context.Context, command string) bool {
	if v, ok := persistCache.Load(command); ok {
		return v.(bool)
	}

	ok := probePersist(ctx, command)
	persistCache.Store(command, ok)
	return ok
}

func probePersist(ctx context.Context, command string) bool {
	argv, err := splitCommand(command)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	//nolint:gosec // G204: the engine command comes from configuration
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], "-persist")...)
	cmd.Stdin = strings.NewReader("")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return false
	}
	return !rejectsPersist(out.String())
}

// rejectsPersist reports whether engine output rejects the -persist flag.
func rejectsPersist(output string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	first = strings.ToLower(first)
	return strings.Contains(first, "unrecognized option") || strings.Contains(first, "unknown option")
}
