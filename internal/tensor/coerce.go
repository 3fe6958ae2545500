package tensor

import (
	"fmt"
	"math"
	"reflect"
)

// maxExactFloat32Int is the largest integer magnitude float32 holds exactly.
const maxExactFloat32Int = 1 << 24

var tensorType = reflect.TypeOf((*Tensor)(nil))

// Coerce normalizes v into a Tensor of the narrowest width that represents
// it without loss.
//
// Accepted inputs are *Tensor (returned unchanged), numeric scalars, and
// arbitrarily nested slices or arrays of numeric values, any, or *Tensor.
// float32 and small integers produce Float32; float64 input, or integers
// float32 cannot hold exactly, produce Float64. A scalar becomes a rank-1
// tensor of length 1.
//
// Errors wrap ErrConversion for non-numeric or empty input; ragged nesting
// additionally wraps ErrShape.
func Coerce(v any) (*Tensor, error) {
	if t, ok := v.(*Tensor); ok {
		if t == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrConversion)
		}
		return t, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil input", ErrConversion)
	}

	shape, err := shapeOf(rv, 0)
	if err != nil {
		return nil, err
	}

	c := &coercer{
		values: make([]float64, 0, Shape(shape).NumElements()),
		dtype:  Float32,
	}
	if err := c.walk(rv, shape, 0); err != nil {
		return nil, err
	}

	if len(shape) == 0 {
		shape = Shape{1}
	}
	return FromFloat64(shape, c.values, c.dtype)
}

// MustCoerce is like Coerce but panics on error.
func MustCoerce(v any) *Tensor {
	t, err := Coerce(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns packs several same-shaped inputs column by column: the result has
// the common shape plus a trailing axis of length len(vs), so Columns(x, y)
// yields one (x, y) pair per row.
func Columns(vs ...any) (*Tensor, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: no columns given", ErrConversion)
	}

	cols := make([]*Tensor, len(vs))
	dtype := Float32
	for i, v := range vs {
		t, err := Coerce(v)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if i > 0 && !t.shape.Equal(cols[0].shape) {
			return nil, fmt.Errorf("%w: column %d has shape %v, column 0 has %v", ErrShape, i, t.shape, cols[0].shape)
		}
		cols[i] = t
		dtype = Wider(dtype, t.dtype)
	}

	n := cols[0].NumElements()
	k := len(cols)
	out := make([]float64, n*k)
	for j, col := range cols {
		for e, v := range col.values() {
			out[e*k+j] = v
		}
	}

	shape := append(cols[0].shape.Clone(), k)
	return FromFloat64(shape, out, dtype)
}

// Take selects entries of the last axis. Negative indices count from the end.
func Take(t *Tensor, cols []int) (*Tensor, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: empty column selection", ErrShape)
	}

	last := t.shape[len(t.shape)-1]
	idx := make([]int, len(cols))
	for i, c := range cols {
		if c < 0 {
			c += last
		}
		if c < 0 || c >= last {
			return nil, fmt.Errorf("%w: column %d out of range (last axis has %d)", ErrShape, cols[i], last)
		}
		idx[i] = c
	}

	src := t.values()
	outer := len(src) / last
	out := make([]float64, 0, outer*len(idx))
	for r := 0; r < outer; r++ {
		base := r * last
		for _, c := range idx {
			out = append(out, src[base+c])
		}
	}

	shape := t.shape.Clone()
	shape[len(shape)-1] = len(idx)
	return FromFloat64(shape, out, t.dtype)
}

// Arange returns the Float32 sequence 0, 1, ..., n-1.
func Arange(n int) (*Tensor, error) {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	dtype := Float32
	if n > maxExactFloat32Int {
		dtype = Float64
	}
	return FromFloat64(Shape{n}, values, dtype)
}

type coercer struct {
	values []float64
	dtype  DataType
}

// shapeOf follows the first element at every nesting level.
func shapeOf(rv reflect.Value, depth int) (Shape, error) {
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil element at depth %d", ErrConversion, depth)
	}

	if rv.Type() == tensorType {
		return rv.Interface().(*Tensor).shape.Clone(), nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		if n == 0 {
			return nil, fmt.Errorf("%w: empty sequence at depth %d", ErrConversion, depth)
		}
		inner, err := shapeOf(rv.Index(0), depth+1)
		if err != nil {
			return nil, err
		}
		return append(Shape{n}, inner...), nil
	default:
		if _, ok := scalarKind(rv.Kind()); ok {
			return Shape{}, nil
		}
		return nil, fmt.Errorf("%w: unsupported element type %s at depth %d", ErrConversion, rv.Type(), depth)
	}
}

func (c *coercer) walk(rv reflect.Value, shape Shape, depth int) error {
	rv = indirect(rv)
	if !rv.IsValid() {
		return fmt.Errorf("%w: nil element at depth %d", ErrConversion, depth)
	}

	if rv.Type() == tensorType {
		t := rv.Interface().(*Tensor)
		if !t.shape.Equal(shape) {
			return ragged(depth)
		}
		c.values = append(c.values, t.values()...)
		c.dtype = Wider(c.dtype, t.dtype)
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if len(shape) == 0 || rv.Len() != shape[0] {
			return ragged(depth)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := c.walk(rv.Index(i), shape[1:], depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if len(shape) != 0 {
		if _, ok := scalarKind(rv.Kind()); ok {
			return ragged(depth)
		}
	}
	return c.scalar(rv, depth)
}

func (c *coercer) scalar(rv reflect.Value, depth int) error {
	width, ok := scalarKind(rv.Kind())
	if !ok {
		return fmt.Errorf("%w: unsupported element type %s at depth %d", ErrConversion, rv.Type(), depth)
	}

	var v float64
	switch {
	case rv.CanFloat():
		v = rv.Float()
	case rv.CanInt():
		v = float64(rv.Int())
		if width == Float64 && math.Abs(v) <= maxExactFloat32Int {
			width = Float32
		}
	case rv.CanUint():
		v = float64(rv.Uint())
		if width == Float64 && v <= maxExactFloat32Int {
			width = Float32
		}
	}

	c.dtype = Wider(c.dtype, width)
	c.values = append(c.values, v)
	return nil
}

// scalarKind reports whether k is numeric and the width its native type needs.
// Wide integer kinds report Float64 and are narrowed per value.
func scalarKind(k reflect.Kind) (DataType, bool) {
	switch k {
	case reflect.Float32, reflect.Int8, reflect.Int16, reflect.Uint8, reflect.Uint16:
		return Float32, true
	case reflect.Float64,
		reflect.Int, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Float64, true
	default:
		return 0, false
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	for rv.IsValid() && rv.Kind() == reflect.Pointer && rv.Type() != tensorType {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	if rv.IsValid() && rv.Type() == tensorType && rv.IsNil() {
		return reflect.Value{}
	}
	return rv
}

func ragged(depth int) error {
	return fmt.Errorf("%w: %w: ragged nested sequence at depth %d", ErrConversion, ErrShape, depth)
}
