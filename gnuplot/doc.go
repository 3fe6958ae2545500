// Copyright 2025 The gnuplot-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gnuplot drives the gnuplot plotting program from Go.
//
// # Overview
//
// A Session owns one gnuplot process and sends it command lines. What to
// draw is described by plot items:
//   - Func: an expression gnuplot evaluates, such as "sin(x)"
//   - File: an existing data file
//   - Data: an in-memory table, sent inline or through a scratch file
//   - GridData: a 2-D grid of values over x and y coordinates, for splot
//
// # Basic Usage
//
//	s, err := gnuplot.New(ctx, gnuplot.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	d, err := gnuplot.NewData([][]float64{{0, 0}, {1, 1}, {2, 4}},
//	    gnuplot.Title("squares"), gnuplot.With("linespoints"))
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	s.Title("Example")
//	s.Plot(gnuplot.MustFunc("x**2"), d)
//	s.Hardcopy("squares.ps", gnuplot.HardcopyOptions{Color: gnuplot.Bool(true)})
//
// # Ownership
//
// Items are reference counted. The creator owns one reference and drops it
// with Close. A session holds its own reference on every item it displays,
// so a scratch file stays on disk until the item is neither owned by the
// caller nor shown by any session.
//
// # Configuration
//
// Platform presets (unix, macosx, windows, cygwin) fill in the engine
// command, terminals and transfer preferences. A YAML file loaded with
// LoadConfig overrides any of them.
//
// # Errors
//
// All errors are reported synchronously by the call that detects them and
// match one of ErrConversion, ErrShape, ErrOption, ErrResource or
// ErrClosed with errors.Is. Replies from gnuplot are never read.
package gnuplot
