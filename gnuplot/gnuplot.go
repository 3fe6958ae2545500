// Copyright 2025 The gnuplot-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gnuplot

import (
	"context"

	"github.com/joaquinabian/gnuplot-go/internal/config"
	"github.com/joaquinabian/gnuplot-go/internal/engine"
	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
	"github.com/joaquinabian/gnuplot-go/internal/session"
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// Type aliases for public API

// Session is a connection to one gnuplot engine.
type Session = session.Session

// SessionOption configures a Session.
type SessionOption = session.Option

// Mode selects between plot and splot.
type Mode = session.Mode

// Plot modes.
const (
	Mode2D Mode = session.Mode2D
	Mode3D Mode = session.Mode3D
)

// Range is an axis range such as [0:10]. Empty bounds are left to gnuplot.
type Range = session.Range

// DefaultHardcopyTerminal is used when HardcopyOptions.Terminal is empty.
const DefaultHardcopyTerminal = session.DefaultHardcopyTerminal

// HardcopyOptions configures Session.Hardcopy.
type HardcopyOptions = session.HardcopyOptions

// TerminalError rejects a hardcopy terminal or option.
type TerminalError = session.TerminalError

// Process is the channel a Session writes to.
type Process = engine.Process

// Config describes one gnuplot session.
type Config = config.Config

// Item is one plottable source.
type Item = plotitem.Item

// Kind identifies the item family member.
type Kind = plotitem.Kind

// Item kinds.
const (
	KindFunc Kind = plotitem.KindFunc
	KindFile Kind = plotitem.KindFile
	KindData Kind = plotitem.KindData
	KindGrid Kind = plotitem.KindGrid
)

// Func plots a gnuplot expression.
type Func = plotitem.Func

// File plots an existing data file.
type File = plotitem.File

// Data plots an in-memory table.
type Data = plotitem.Data

// GridData plots values over a 2-D coordinate grid.
type GridData = plotitem.GridData

// DataType is the floating-point width of plot data.
type DataType = tensor.DataType

// Data widths.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Option is a plot item option.
type Option = plotitem.Option

// OptionError describes an illegal plot item option.
type OptionError = plotitem.OptionError

// Option keys accepted by Item.SetOption.
const (
	KeyTitle  = plotitem.KeyTitle
	KeyWith   = plotitem.KeyWith
	KeyAxes   = plotitem.KeyAxes
	KeyUsing  = plotitem.KeyUsing
	KeyEvery  = plotitem.KeyEvery
	KeyIndex  = plotitem.KeyIndex
	KeySmooth = plotitem.KeySmooth
	KeyBinary = plotitem.KeyBinary
	KeyInline = plotitem.KeyInline
)

// Errors.
var (
	ErrConversion         = plotitem.ErrConversion
	ErrShape              = plotitem.ErrShape
	ErrOption             = plotitem.ErrOption
	ErrResource           = plotitem.ErrResource
	ErrClosed             = session.ErrClosed
	ErrItemClosed         = plotitem.ErrClosed
	ErrNoItems            = session.ErrNoItems
	ErrInvalidConfig      = config.ErrInvalid
	ErrPersistUnsupported = engine.ErrPersistUnsupported
)

// Sessions

// New starts gnuplot as described by cfg.
func New(ctx context.Context, cfg Config, opts ...SessionOption) (*Session, error) {
	return session.New(ctx, cfg, opts...)
}

// NewWithProcess wraps an already running process.
func NewWithProcess(proc Process, cfg Config, opts ...SessionOption) (*Session, error) {
	return session.NewWithProcess(proc, cfg, opts...)
}

// WithLogger is defined in options.go.

// Bounds builds a Range from numeric limits.
func Bounds(lo, hi float64) Range {
	return session.Bounds(lo, hi)
}

// Configuration

// DefaultConfig returns the unix preset.
func DefaultConfig() Config {
	return config.Default()
}

// ConfigFor returns the preset for unix, macosx, windows or cygwin.
func ConfigFor(platform string) (Config, error) {
	return config.ForPlatform(platform)
}

// LoadConfig reads a YAML config file over its platform preset.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// ParseConfig decodes YAML config data over its platform preset.
func ParseConfig(data []byte) (Config, error) {
	return config.Parse(data)
}

// Items

// NewFunc creates a function item.
func NewFunc(expr string, opts ...Option) (*Func, error) {
	return plotitem.NewFunc(expr, opts...)
}

// MustFunc is like NewFunc but panics on error.
func MustFunc(expr string, opts ...Option) *Func {
	f, err := plotitem.NewFunc(expr, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFile creates an item for an existing data file.
func NewFile(path string, opts ...Option) (*File, error) {
	return plotitem.NewFile(path, opts...)
}

// NewData coerces v into a table and wraps it.
func NewData(v any, opts ...Option) (*Data, error) {
	return plotitem.NewData(v, opts...)
}

// NewColumns zips 1-D inputs into the columns of a Data item.
func NewColumns(columns []any, opts ...Option) (*Data, error) {
	return plotitem.NewColumns(columns, opts...)
}

// NewGridData wraps values[i][j] = f(xs[i], ys[j]).
func NewGridData(values, xs, ys any, opts ...Option) (*GridData, error) {
	return plotitem.NewGridData(values, xs, ys, opts...)
}

// ComputeData evaluates f at every x and plots (x, f(x)).
func ComputeData(xs any, f func(x float64) float64, opts ...Option) (*Data, error) {
	return plotitem.ComputeData(xs, f, opts...)
}

// ComputeGridData evaluates f over the grid xs × ys.
func ComputeGridData(xs, ys any, f func(x, y float64) float64, opts ...Option) (*GridData, error) {
	return plotitem.ComputeGridData(xs, ys, f, opts...)
}

// SaveData writes v to path and returns a File item for it.
func SaveData(path string, v any, opts ...Option) (*File, error) {
	return plotitem.SaveData(path, v, opts...)
}

// SaveGridData writes a grid to path and returns a File item for it.
func SaveGridData(path string, values, xs, ys any, binary bool, opts ...Option) (*File, error) {
	return plotitem.SaveGridData(path, values, xs, ys, binary, opts...)
}

// LoadGridData reads a binary grid file saved by SaveGridData.
func LoadGridData(path string, dtype DataType, opts ...Option) (*GridData, error) {
	return plotitem.LoadGridData(path, dtype, opts...)
}

// LegalOptions lists the option keys a kind accepts.
func LegalOptions(kind Kind) []string {
	return plotitem.LegalOptions(kind)
}

// Quote escapes s as a gnuplot double-quoted string.
func Quote(s string) string {
	return plotitem.Quote(s)
}
