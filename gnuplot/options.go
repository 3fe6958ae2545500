// Copyright 2025 The gnuplot-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gnuplot

import (
	"log/slog"

	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
	"github.com/joaquinabian/gnuplot-go/internal/session"
)

// WithLogger traces every command sent at Debug level.
func WithLogger(logger *slog.Logger) SessionOption {
	return session.WithLogger(logger)
}

// Title sets the legend entry.
func Title(s string) Option { return plotitem.Title(s) }

// NoTitle suppresses the legend entry.
func NoTitle() Option { return plotitem.NoTitle() }

// With sets the plot style, e.g. "lines" or "points pt 7".
func With(style string) Option { return plotitem.With(style) }

// Axes selects the axis pair: x1y1, x1y2, x2y1 or x2y2.
func Axes(pair string) Option { return plotitem.Axes(pair) }

// Using sets the column selector: an int, a []int, or a raw string.
func Using(sel any) Option { return plotitem.Using(sel) }

// Every sets the sampling selector: an int, []int, []any with nil holes,
// or a raw string.
func Every(sel any) Option { return plotitem.Every(sel) }

// Index selects data sets in a multi-set file.
func Index(sel any) Option { return plotitem.Index(sel) }

// Smooth sets the smoothing mode.
func Smooth(mode string) Option { return plotitem.Smooth(mode) }

// Binary toggles binary transfer of grid data.
func Binary(on bool) Option { return plotitem.Binary(on) }

// BinaryFormat marks a file as binary with an explicit format clause.
func BinaryFormat(spec string) Option { return plotitem.BinaryFormat(spec) }

// Inline chooses inline transfer over a scratch file.
func Inline(on bool) Option { return plotitem.Inline(on) }

// Cols keeps only the given columns of a Data item.
func Cols(idx ...int) Option { return plotitem.Cols(idx...) }

// Bool returns a pointer to v, for HardcopyOptions fields.
func Bool(v bool) *bool { return &v }
