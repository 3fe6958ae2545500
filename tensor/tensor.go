// Copyright 2025 The gnuplot-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// Type aliases for public API

// DataType is the floating-point width of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{3, 2} is a table of three rows and two columns.
type Shape = tensor.Shape

// Tensor is an immutable rectangular numeric array.
type Tensor = tensor.Tensor

// Errors returned by coercion.
var (
	ErrConversion = tensor.ErrConversion
	ErrShape      = tensor.ErrShape
)

// Coerce converts a scalar, nested slice or array, or *Tensor into a Tensor.
func Coerce(v any) (*Tensor, error) {
	return tensor.Coerce(v)
}

// MustCoerce is like Coerce but panics on error.
func MustCoerce(v any) *Tensor {
	return tensor.MustCoerce(v)
}

// FromFloat64 builds a tensor of the given shape from row-major values.
func FromFloat64(shape Shape, values []float64, dtype DataType) (*Tensor, error) {
	return tensor.FromFloat64(shape, values, dtype)
}

// Columns zips equal-length 1-D inputs into an (n, len(vs)) table.
func Columns(vs ...any) (*Tensor, error) {
	return tensor.Columns(vs...)
}

// Take selects columns of a 2-D tensor. Negative indices count from the end.
func Take(t *Tensor, cols []int) (*Tensor, error) {
	return tensor.Take(t, cols)
}

// Arange returns 0, 1, ..., n-1.
func Arange(n int) (*Tensor, error) {
	return tensor.Arange(n)
}

// Wider returns the wider of two data types.
func Wider(a, b DataType) DataType {
	return tensor.Wider(a, b)
}
