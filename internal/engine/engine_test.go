package engine

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/joaquinabian/gnuplot-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.gp")
	p, err := OpenFile(path)
	require.NoError(t, err)

	_, err = p.Write([]byte("set terminal x11\n"))
	require.NoError(t, err)
	_, err = p.Write([]byte("plot sin(x)\n"))
	require.NoError(t, err)
	assert.False(t, p.SupportsPersist())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Write([]byte("late\n"))
	assert.ErrorIs(t, err, ErrClosed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "set terminal x11\nplot sin(x)\n", string(content))
}

func TestOpenSelectsTransport(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = config.TransportFile
	cfg.CommandLog = filepath.Join(t.TempDir(), "log.gp")

	p, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer p.Close()
	assert.IsType(t, &FileProcess{}, p)

	cfg.Transport = "smoke-signals"
	_, err = Open(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSplitCommand(t *testing.T) {
	argv, err := splitCommand(`"/opt/my gnuplot/gnuplot" -d -e 'set term dumb'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/my gnuplot/gnuplot", "-d", "-e", "set term dumb"}, argv)

	_, err = splitCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestRejectsPersist(t *testing.T) {
	assert.True(t, rejectsPersist("Unrecognized option -persist\nusage: ..."))
	assert.False(t, rejectsPersist(""))
	assert.False(t, rejectsPersist("gnuplot 5.4 patchlevel 2"))
}

func TestPipeProcess(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out := filepath.Join(t.TempDir(), "received")
	p, err := StartPipe(`sh -c 'cat > "$0"' `+out, false)
	require.NoError(t, err)
	assert.False(t, p.SupportsPersist())

	_, err = p.Write([]byte("plot sin(x)\n"))
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "plot sin(x)\n", string(content))

	_, err = p.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestProbePersistMissingEngine(t *testing.T) {
	assert.False(t, ProbePersist(context.Background(), "/nonexistent/gnuplot-binary"))
}

func TestOpenPersistUnsupported(t *testing.T) {
	cfg := config.Default()
	cfg.Command = "/nonexistent/gnuplot-binary"
	cfg.Persist = true

	_, err := Open(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrPersistUnsupported)
}
