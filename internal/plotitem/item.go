package plotitem

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joaquinabian/gnuplot-go/internal/tempfile"
)

// Kind identifies the item family member.
type Kind int

// Item kinds.
const (
	KindFunc Kind = iota
	KindFile
	KindData
	KindGrid
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "Func"
	case KindFile:
		return "File"
	case KindData:
		return "Data"
	case KindGrid:
		return "GridData"
	default:
		return "Unknown"
	}
}

// Env is the rendering environment a session supplies.
type Env struct {
	TempDir       string // Directory for scratch files ("" = os.TempDir())
	PreferInline  bool   // Transfer mode for items with no explicit inline option
	DisableBinary bool   // The engine cannot read binary grids
}

// Item is one plottable source.
//
// Items are reference counted. A new item holds one reference owned by its
// creator and released by Close; sessions Retain items they display and
// Release them when they stop.
//
// Renders are cached per Env, so sessions with different environments can
// display the same item. A scratch file lives until the render it backs is
// replaced by a newer render for the same Env, or the last reference goes.
type Item interface {
	ID() uuid.UUID
	Kind() Kind

	// SetOption validates and stores an option and marks every cached
	// render stale. A nil value clears the option.
	SetOption(key string, value any) error
	SetOptions(opts ...Option) error
	Option(key string) (any, bool)
	ClearOption(key string)

	// Command renders the fragment for a plot command, staging data as a
	// side effect. Repeated calls with the same Env return the cached result.
	Command(env Env) (string, error)

	// HasInlineData reports whether the render for env produced a data
	// block that must follow the command line.
	HasInlineData(env Env) bool

	// WriteData writes the inline data block of the render for env, if any.
	WriteData(w io.Writer, env Env) error

	Retain() error
	Release() error
	Close() error
}

type setting struct {
	value  any
	clause string
}

// rendering is the output of one render.
type rendering struct {
	source string             // Source clause (expression, quoted path, or "-")
	skip   []string           // Option keys already folded into source
	data   []byte             // Inline data block, terminator included
	temp   *tempfile.Resource // Scratch file backing source, if any
}

type renderFunc func(env Env) (rendering, error)

// cached is a render kept for one Env.
type cached struct {
	fragment string
	out      rendering
	stale    bool
}

// base carries the state shared by every item kind.
type base struct {
	mu      sync.Mutex
	id      uuid.UUID
	kind    Kind
	options map[string]setting
	render  renderFunc

	renders map[Env]*cached
	last    Env

	refs         int
	callerClosed bool
	disposed     bool
}

func newBase(kind Kind) *base {
	return &base{
		id:      uuid.New(),
		kind:    kind,
		options: make(map[string]setting),
		renders: make(map[Env]*cached),
		refs:    1,
	}
}

// ID returns the item's identity.
func (b *base) ID() uuid.UUID {
	return b.id
}

// Kind returns the item kind.
func (b *base) Kind() Kind {
	return b.kind
}

// SetOption validates and stores one option.
func (b *base) SetOption(key string, value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.setLocked(key, value)
}

// SetOptions applies options in order, stopping at the first error.
func (b *base) SetOptions(opts ...Option) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range opts {
		if err := b.setLocked(o.Key, o.Value); err != nil {
			return err
		}
	}
	return nil
}

func (b *base) setLocked(key string, value any) error {
	r, ok := optionTable[b.kind][key]
	if !ok {
		return &OptionError{Kind: b.kind, Key: key, Value: value, Reason: "unknown option"}
	}

	if value == nil {
		delete(b.options, key)
		b.markStaleLocked()
		return nil
	}

	clause, err := r(value)
	if err != nil {
		return &OptionError{Kind: b.kind, Key: key, Value: value, Reason: err.Error()}
	}
	b.options[key] = setting{value: value, clause: clause}
	b.markStaleLocked()
	return nil
}

// Option returns the stored value of an option.
func (b *base) Option(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.options[key]
	return s.value, ok
}

// ClearOption removes an option.
func (b *base) ClearOption(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.options[key]; ok {
		delete(b.options, key)
		b.markStaleLocked()
	}
}

// boolOption reads a bool option, falling back to def.
func (b *base) boolOption(key string, def bool) bool {
	if s, ok := b.options[key]; ok {
		if v, ok := s.value.(bool); ok {
			return v
		}
	}
	return def
}

// Command renders the fragment, reusing the cached one when nothing changed.
// A stale render for env is released only after its replacement succeeds.
func (b *base) Command(env Env) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return "", ErrClosed
	}
	prev := b.renders[env]
	if prev != nil && !prev.stale {
		b.last = env
		return prev.fragment, nil
	}

	out, err := b.render(env)
	if err != nil {
		return "", err
	}

	parts := []string{out.source}
	for _, key := range clauseOrder {
		if contains(out.skip, key) {
			continue
		}
		if s, ok := b.options[key]; ok && s.clause != "" {
			parts = append(parts, s.clause)
		}
	}

	c := &cached{fragment: strings.Join(parts, " "), out: out}
	b.renders[env] = c
	b.last = env
	if prev != nil {
		if err := releaseRendering(prev); err != nil {
			return "", err
		}
	}
	return c.fragment, nil
}

// HasInlineData reports whether the render for env staged inline data.
func (b *base) HasInlineData(env Env) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.renders[env]
	return c != nil && len(c.out.data) > 0
}

// WriteData writes the inline data block staged for env.
func (b *base) WriteData(w io.Writer, env Env) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return ErrClosed
	}
	c := b.renders[env]
	if c == nil || len(c.out.data) == 0 {
		return nil
	}
	if _, err := w.Write(c.out.data); err != nil {
		return fmt.Errorf("failed to write inline data: %w", err)
	}
	return nil
}

// TempPath returns the scratch file of the most recent render, or "".
func (b *base) TempPath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.renders[b.last]
	if c == nil || c.out.temp == nil {
		return ""
	}
	return c.out.temp.Path()
}

// Retain adds a reference.
func (b *base) Retain() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return ErrClosed
	}
	b.refs++
	return nil
}

// Release drops a reference, disposing the item when none remain.
func (b *base) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.releaseLocked()
}

// Close drops the creator's reference. Calling it again is a no-op.
func (b *base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.callerClosed {
		return nil
	}
	b.callerClosed = true
	return b.releaseLocked()
}

func (b *base) releaseLocked() error {
	if b.disposed {
		return nil
	}
	b.refs--
	if b.refs > 0 {
		return nil
	}
	b.disposed = true

	var errs []error
	for env, c := range b.renders {
		errs = append(errs, releaseRendering(c))
		delete(b.renders, env)
	}
	return errors.Join(errs...)
}

// markStaleLocked forces the next Command for every Env to re-render.
// Scratch files are left alone.
func (b *base) markStaleLocked() {
	for _, c := range b.renders {
		c.stale = true
	}
}

func releaseRendering(c *cached) error {
	if c.out.temp == nil {
		return nil
	}
	return c.out.temp.Release()
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// splitOptions separates construction-only options from table options.
func splitOptions(opts []Option) (cols []int, rest []Option, err error) {
	for _, o := range opts {
		if o.Key != keyCols {
			rest = append(rest, o)
			continue
		}
		c, ok := o.Value.([]int)
		if !ok || len(c) == 0 {
			return nil, nil, &OptionError{Kind: KindData, Key: keyCols, Value: o.Value, Reason: "cols must be a non-empty []int"}
		}
		cols = c
	}
	return cols, rest, nil
}

var (
	_ Item = (*Func)(nil)
	_ Item = (*File)(nil)
	_ Item = (*Data)(nil)
	_ Item = (*GridData)(nil)
)
