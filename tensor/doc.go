// Copyright 2025 The gnuplot-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the numeric arrays plot data is built from.
//
// # Overview
//
// A Tensor is an immutable, rectangular N-dimensional array with a single
// floating-point width (Float32 or Float64). Plot items accept loosely
// typed Go values and coerce them with this package:
//   - scalars of any numeric kind
//   - slices and arrays, nested to any depth
//   - slices of *Tensor, which are stacked
//
// # Basic Usage
//
//	t, err := tensor.Coerce([][]float64{{0, 0}, {1, 1}, {2, 4}})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.Shape()) // [3 2]
//
//	// Columns zips 1-D inputs into a table.
//	xy, err := tensor.Columns([]float64{0, 1, 2}, []int{0, 1, 4})
//
// # Data Types
//
// The width is chosen from the input: float32 and integers that fit in 24
// bits become Float32, everything else Float64. Mixed inputs take the wider
// width.
//
// # Errors
//
// Ragged input fails with both ErrConversion and ErrShape; non-numeric input
// fails with ErrConversion. No partial tensor is ever returned.
package tensor
