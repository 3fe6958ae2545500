package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaquinabian/gnuplot-go/internal/config"
	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
)

// recorder is a Process that keeps every write.
type recorder struct {
	mu      sync.Mutex
	writes  []string
	persist bool
	closed  int
	fail    error
}

func (r *recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return 0, r.fail
	}
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func (r *recorder) SupportsPersist() bool { return r.persist }

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return ""
	}
	return r.writes[len(r.writes)-1]
}

func (r *recorder) all() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.writes, "")
}

func newTestSession(t *testing.T, mutate ...func(*config.Config)) (*Session, *recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	for _, m := range mutate {
		m(&cfg)
	}
	rec := &recorder{}
	s, err := NewWithProcess(rec, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, rec
}

func newDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func mustFunc(t *testing.T, expr string, opts ...plotitem.Option) *plotitem.Func {
	t.Helper()
	f, err := plotitem.NewFunc(expr, opts...)
	require.NoError(t, err)
	return f
}

func TestNewSetsTerminal(t *testing.T) {
	_, rec := newTestSession(t)
	assert.Equal(t, "set terminal x11\n", rec.last())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = "carrier-pigeon"
	_, err := NewWithProcess(&recorder{}, cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestPlotFunctions(t *testing.T) {
	s, rec := newTestSession(t)

	err := s.Plot(
		mustFunc(t, "sin(x)", plotitem.Title("sine")),
		mustFunc(t, "cos(x)", plotitem.With("lines")),
	)
	require.NoError(t, err)

	assert.Equal(t, "plot sin(x) title \"sine\", cos(x) with lines\n", rec.last())
	assert.Equal(t, Mode2D, s.Mode())
	assert.Len(t, s.ActiveItems(), 2)
}

func TestSplotSetsMode(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.Splot(mustFunc(t, "x*y")))
	assert.Equal(t, "splot x*y\n", rec.last())
	assert.Equal(t, Mode3D, s.Mode())
}

func TestPlotWithRanges(t *testing.T) {
	s, rec := newTestSession(t)

	s.SetPlotRanges(Bounds(0, 6.5), Range{Max: "10"})
	require.NoError(t, s.Plot(mustFunc(t, "x")))
	assert.Equal(t, "plot [0:6.5] [:10] x\n", rec.last())

	s.SetPlotRanges()
	require.NoError(t, s.Refresh())
	assert.Equal(t, "plot x\n", rec.last())
}

func TestPlotInlineDataSingleWrite(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.Config) { c.PreferInlineData = true })

	d, err := plotitem.NewData([][]float64{{0, 0}, {1, 1}, {2, 4}}, plotitem.Title("squares"))
	require.NoError(t, err)
	defer d.Close()

	before := len(rec.writes)
	require.NoError(t, s.Plot(mustFunc(t, "x**2"), d))
	require.Len(t, rec.writes, before+1)

	out := rec.last()
	assert.True(t, strings.HasPrefix(out, "plot x**2, \"-\" title \"squares\"\n0 0\n1 1\n2 4\n"), out)
	assert.True(t, strings.HasSuffix(out, "e\n"), out)
}

func TestReplotSendsSameCommand(t *testing.T) {
	s, rec := newTestSession(t)

	d, err := plotitem.NewData([]float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, s.Plot(d))
	first := rec.last()

	require.NoError(t, s.Replot())
	assert.Equal(t, first, rec.last())
	assert.True(t, strings.HasPrefix(first, "plot \""), first)
}

func TestReplotAppends(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.Plot(mustFunc(t, "x")))
	require.NoError(t, s.Replot(mustFunc(t, "2*x")))
	assert.Equal(t, "plot x, 2*x\n", rec.last())
	assert.Len(t, s.ActiveItems(), 2)
}

func TestRefreshWithoutItems(t *testing.T) {
	s, _ := newTestSession(t)
	assert.ErrorIs(t, s.Refresh(), ErrNoItems)
	assert.ErrorIs(t, s.Plot(), ErrNoItems)
}

func TestSessionKeepsTempFileAlive(t *testing.T) {
	s, _ := newTestSession(t)

	d, err := plotitem.NewData([]float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, s.Plot(d))

	// The caller is done with the item; the session still displays it.
	require.NoError(t, d.Close())
	path := d.TempPath()
	require.NotEmpty(t, path)
	assert.FileExists(t, path)

	require.NoError(t, s.Replot())
	assert.FileExists(t, path)

	// Replacing the plot drops the last reference.
	require.NoError(t, s.Plot(mustFunc(t, "x")))
	assert.NoFileExists(t, path)
}

func TestPlotValues(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.Config) { c.PreferInlineData = true })

	f := mustFunc(t, "tan(x)")
	require.NoError(t, s.PlotValues("sin(x)", []float64{1, 2}, f))

	out := rec.last()
	assert.True(t, strings.HasPrefix(out, "plot sin(x), \"-\", tan(x)\n1\n2\n"), out)

	items := s.ActiveItems()
	require.Len(t, items, 3)
	assert.Same(t, f, items[2])

	// Converted items are owned by the session alone.
	require.NoError(t, s.Reset())
	assert.ErrorIs(t, items[0].Retain(), plotitem.ErrClosed)
	require.NoError(t, f.Retain())
}

func TestPlotValuesConversionError(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.PlotValues("x", [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, plotitem.ErrShape)
	assert.Empty(t, s.ActiveItems())
}

func TestPlotClosedItem(t *testing.T) {
	s, _ := newTestSession(t)
	f := mustFunc(t, "x")
	require.NoError(t, f.Close())
	assert.ErrorIs(t, s.Plot(f), plotitem.ErrClosed)
}

func TestSplotGridWithoutBinarySupport(t *testing.T) {
	s, _ := newTestSession(t, func(c *config.Config) { c.RecognizesBinarySplot = false })

	g, err := plotitem.NewGridData([][]float64{{0, 1}, {2, 3}}, []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, s.Splot(g))
	path := g.TempPath()
	assert.True(t, strings.HasSuffix(path, ".dat"), path)

	require.NoError(t, g.SetOptions(plotitem.Binary(true)))
	assert.ErrorIs(t, s.Refresh(), plotitem.ErrOption)
}

func TestOptionChangeKeepsDisplayedFile(t *testing.T) {
	s, _ := newTestSession(t)

	d, err := plotitem.NewData([]float64{1, 2, 3}, plotitem.Inline(false))
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, s.Plot(d))
	path := d.TempPath()
	require.FileExists(t, path)

	require.NoError(t, d.SetOption(plotitem.KeyTitle, "new"))
	assert.FileExists(t, path, "the session still displays the old render")

	require.NoError(t, s.Replot())
	assert.NoFileExists(t, path)
	assert.FileExists(t, d.TempPath())
}

func TestSessionsShareItemWithDifferentEnvs(t *testing.T) {
	fileSession, _ := newTestSession(t)
	inlineSession, inlineRec := newTestSession(t, func(c *config.Config) { c.PreferInlineData = true })
	otherDirSession, _ := newTestSession(t)

	d, err := plotitem.NewData([]float64{1, 2, 3})
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, fileSession.Plot(d))
	path := d.TempPath()
	require.FileExists(t, path)

	require.NoError(t, inlineSession.Plot(d))
	assert.True(t, strings.HasPrefix(inlineRec.last(), "plot \"-\"\n1\n2\n3\n"), inlineRec.last())
	assert.FileExists(t, path)

	require.NoError(t, otherDirSession.Plot(d))
	assert.FileExists(t, path)
	assert.NotEqual(t, path, d.TempPath())

	require.NoError(t, fileSession.Refresh())
	assert.FileExists(t, path)
}

func TestOptionChangeRerenders(t *testing.T) {
	s, rec := newTestSession(t)

	f := mustFunc(t, "x", plotitem.Title("one"), plotitem.With("points"))
	require.NoError(t, s.Plot(f))
	require.NoError(t, f.SetOption(plotitem.KeyTitle, "two"))
	require.NoError(t, s.Refresh())

	assert.Equal(t, "plot x title \"two\" with points\n", rec.last())
}

func TestConvenienceCommands(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.Title(`say "hi"`))
	require.NoError(t, s.XLabel("x"))
	require.NoError(t, s.YLabel("y"))
	require.NoError(t, s.ZLabel("z"))
	require.NoError(t, s.SetString("key", nil))
	require.NoError(t, s.SetRange("xrange", Range{Min: "-1"}))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Load(`C:\plots\a.gp`))
	require.NoError(t, s.Save("out.gp"))
	require.NoError(t, s.Command("set grid"))

	want := strings.Join([]string{
		"set terminal x11",
		`set title "say \"hi\""`,
		`set xlabel "x"`,
		`set ylabel "y"`,
		`set zlabel "z"`,
		"set key",
		"set xrange [-1:]",
		"clear",
		`load "C:\\plots\\a.gp"`,
		`save "out.gp"`,
		"set grid",
	}, "\n") + "\n"
	assert.Equal(t, want, rec.all())
}

func TestResetDropsItems(t *testing.T) {
	s, rec := newTestSession(t)

	s.SetPlotRanges(Bounds(0, 1))
	require.NoError(t, s.Plot(mustFunc(t, "x")))
	require.NoError(t, s.Reset())

	assert.Equal(t, "reset\n", rec.last())
	assert.Empty(t, s.ActiveItems())
	assert.ErrorIs(t, s.Refresh(), ErrNoItems)
}

func TestClose(t *testing.T) {
	s, rec := newTestSession(t)

	f := mustFunc(t, "x")
	require.NoError(t, s.Plot(f))
	require.NoError(t, f.Close())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, rec.closed)

	assert.ErrorIs(t, f.Retain(), plotitem.ErrClosed)
	assert.ErrorIs(t, s.Command("x"), ErrClosed)
	assert.ErrorIs(t, s.Plot(mustFunc(t, "x")), ErrClosed)
	assert.ErrorIs(t, s.Hardcopy("a.ps", HardcopyOptions{}), ErrClosed)
}

func TestWriteError(t *testing.T) {
	s, rec := newTestSession(t)
	rec.fail = errors.New("broken pipe")
	err := s.Command("set grid")
	assert.ErrorContains(t, err, "broken pipe")
}

func TestLoggerTracesCommands(t *testing.T) {
	var buf bytes.Buffer
	logger := newDebugLogger(&buf)

	s, err := NewWithProcess(&recorder{}, config.Default(), WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Command("set grid"))
	assert.Contains(t, buf.String(), "gnuplot> set terminal x11")
	assert.Contains(t, buf.String(), "gnuplot> set grid")
}

func TestInteract(t *testing.T) {
	s, rec := newTestSession(t)

	var prompt bytes.Buffer
	in := strings.NewReader("set grid\n\n  plot sin(x)  \n")
	require.NoError(t, s.Interact(context.Background(), in, &prompt))

	assert.Equal(t, "set terminal x11\nset grid\nplot sin(x)\n", rec.all())
	assert.Equal(t, strings.Repeat(Prompt, 4), prompt.String())
}

func TestInteractCancelled(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Interact(ctx, strings.NewReader("set grid\n"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileTransportSession(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = config.TransportFile
	cfg.CommandLog = t.TempDir() + "/commands.gp"

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, s.Plot(mustFunc(t, "sin(x)")))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(cfg.CommandLog)
	require.NoError(t, err)
	assert.Equal(t, "set terminal x11\nplot sin(x)\n", string(data))
}
