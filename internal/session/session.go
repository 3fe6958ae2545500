// Package session drives one gnuplot engine.
//
// A Session owns an engine process and the list of items currently on
// display. Plot and Splot replace that list, Replot extends it, and
// Refresh re-sends it as a single write: the command line followed by any
// inline data blocks in item order. The session holds a reference on every
// displayed item so that file-backed data survives until the next plot.
//
// Every method takes the session mutex for its whole write sequence, so
// concurrent callers never interleave commands. Sessions share nothing.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/joaquinabian/gnuplot-go/internal/config"
	"github.com/joaquinabian/gnuplot-go/internal/engine"
	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
)

// Mode selects the plot command.
type Mode int

// Plot modes.
const (
	Mode2D Mode = iota // plot
	Mode3D             // splot
)

func (m Mode) command() string {
	if m == Mode3D {
		return "splot"
	}
	return "plot"
}

// String returns the plot command of the mode.
func (m Mode) String() string {
	return m.command()
}

// Range is an axis range. Empty bounds are left to the engine.
type Range struct {
	Min string
	Max string
}

// String renders the range as [min:max].
func (r Range) String() string {
	return "[" + r.Min + ":" + r.Max + "]"
}

// Bounds builds a Range from numeric limits.
func Bounds(lo, hi float64) Range {
	return Range{Min: formatBound(lo), Max: formatBound(hi)}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger commands are traced to at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is a connection to one gnuplot engine.
type Session struct {
	mu     sync.Mutex
	cfg    config.Config
	proc   engine.Process
	logger *slog.Logger
	env    plotitem.Env

	mode   Mode
	ranges []Range
	active *slots
	closed bool
}

// New starts the engine described by cfg and wraps it in a session.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Session, error) {
	proc, err := engine.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	s, err := NewWithProcess(proc, cfg, opts...)
	if err != nil {
		_ = proc.Close()
		return nil, err
	}
	return s, nil
}

// NewWithProcess wraps an already running engine process.
func NewWithProcess(proc engine.Process, cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		proc:   proc,
		logger: slog.New(slog.DiscardHandler),
		env: plotitem.Env{
			TempDir:       cfg.TempDir,
			PreferInline:  cfg.PreferInlineData,
			DisableBinary: !cfg.RecognizesBinarySplot,
		},
		active: newSlots(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sendLocked("set terminal " + cfg.DefaultTerminal); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the configuration the session was built from.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Mode returns the mode of the last Plot or Splot.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SupportsPersist reports whether the engine keeps windows after exit.
func (s *Session) SupportsPersist() bool {
	return s.proc.SupportsPersist()
}

// ActiveItems returns the displayed items in plot order.
func (s *Session) ActiveItems() []plotitem.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.list()
}

// Plot replaces the displayed items and draws them with plot.
func (s *Session) Plot(items ...plotitem.Item) error {
	return s.show(Mode2D, items)
}

// Splot replaces the displayed items and draws them with splot.
func (s *Session) Splot(items ...plotitem.Item) error {
	return s.show(Mode3D, items)
}

// PlotValues is Plot for loosely typed values: expression strings,
// arrays, or items.
func (s *Session) PlotValues(values ...any) error {
	return s.showValues(Mode2D, values)
}

// SplotValues is Splot for loosely typed values.
func (s *Session) SplotValues(values ...any) error {
	return s.showValues(Mode3D, values)
}

// Replot appends items to the displayed list and redraws.
func (s *Session) Replot(items ...plotitem.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.active.add(items...); err != nil {
		return err
	}
	return s.refreshLocked()
}

// Refresh re-sends the displayed items.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.refreshLocked()
}

// SetPlotRanges sets the ranges placed between the plot command and the
// first item. No ranges restores the engine's own settings.
func (s *Session) SetPlotRanges(ranges ...Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges = append([]Range(nil), ranges...)
}

// Command sends one raw line.
func (s *Session) Command(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.sendLocked(line)
}

// Clear clears the plot window.
func (s *Session) Clear() error {
	return s.Command("clear")
}

// Reset restores engine defaults and drops the displayed items.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	released := s.active.reset()
	s.ranges = nil
	if err := s.sendLocked("reset"); err != nil {
		return err
	}
	return released
}

// SetString sets a string-valued engine option, or resets it when value
// is nil.
func (s *Session) SetString(option string, value *string) error {
	if value == nil {
		return s.Command("set " + option)
	}
	return s.Command("set " + option + " " + plotitem.Quote(*value))
}

// SetRange sends "set <option> [min:max]", e.g. SetRange("xrange", r).
func (s *Session) SetRange(option string, r Range) error {
	return s.Command("set " + option + " " + r.String())
}

// Title sets the plot title.
func (s *Session) Title(text string) error {
	return s.SetString("title", &text)
}

// XLabel sets the x axis label.
func (s *Session) XLabel(text string) error {
	return s.SetString("xlabel", &text)
}

// YLabel sets the y axis label.
func (s *Session) YLabel(text string) error {
	return s.SetString("ylabel", &text)
}

// ZLabel sets the z axis label.
func (s *Session) ZLabel(text string) error {
	return s.SetString("zlabel", &text)
}

// Load makes the engine execute a command file.
func (s *Session) Load(path string) error {
	return s.Command("load " + plotitem.Quote(path))
}

// Save makes the engine write its settings and last plot to a file.
func (s *Session) Save(path string) error {
	return s.Command("save " + plotitem.Quote(path))
}

// Close releases the displayed items and stops the engine. Calling it
// again is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.active.reset(), s.proc.Close())
}

func (s *Session) show(mode Mode, items []plotitem.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	next := newSlots()
	if err := next.add(items...); err != nil {
		return err
	}
	prev := s.active
	s.active = next
	s.mode = mode
	if err := prev.reset(); err != nil {
		s.logger.Warn("failed to release plot items", "error", err)
	}
	return s.refreshLocked()
}

func (s *Session) showValues(mode Mode, values []any) error {
	items := make([]plotitem.Item, 0, len(values))
	var owned []plotitem.Item
	defer func() {
		for _, item := range owned {
			_ = item.Close()
		}
	}()

	for i, v := range values {
		item, created, err := plotitem.From(v)
		if err != nil {
			return fmt.Errorf("plot argument %d: %w", i, err)
		}
		if created {
			owned = append(owned, item)
		}
		items = append(items, item)
	}
	return s.show(mode, items)
}

// refreshLocked renders every item and writes the command line and the
// inline data in one call.
func (s *Session) refreshLocked() error {
	items := s.active.list()
	if len(items) == 0 {
		return ErrNoItems
	}

	fragments := make([]string, len(items))
	for i, item := range items {
		frag, err := item.Command(s.env)
		if err != nil {
			return fmt.Errorf("failed to render %s item: %w", item.Kind(), err)
		}
		fragments[i] = frag
	}

	line := s.plotLine(fragments)
	var buf bytes.Buffer
	buf.WriteString(line)
	buf.WriteByte('\n')
	for _, item := range items {
		if !item.HasInlineData(s.env) {
			continue
		}
		if err := item.WriteData(&buf, s.env); err != nil {
			return err
		}
	}

	s.logger.Debug("gnuplot> " + line)
	return s.writeLocked(buf.Bytes())
}

func (s *Session) plotLine(fragments []string) string {
	parts := make([]string, 0, 1+len(s.ranges))
	parts = append(parts, s.mode.command())
	for _, r := range s.ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ") + " " + strings.Join(fragments, ", ")
}

// sendLocked writes command lines in one call.
func (s *Session) sendLocked(lines ...string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		s.logger.Debug("gnuplot> " + line)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return s.writeLocked(buf.Bytes())
}

func (s *Session) writeLocked(b []byte) error {
	if _, err := s.proc.Write(b); err != nil {
		return fmt.Errorf("failed to write to engine: %w", err)
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
