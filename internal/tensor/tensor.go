package tensor

import "fmt"

// Tensor is an immutable, rectangular, N-dimensional array with a single
// floating-point width.
//
// Values are held as float64; a Float32 tensor only ever holds values that
// were rounded through float32, so formatting and binary encoding at the
// tensor's width are lossless.
type Tensor struct {
	data   []float64 // Shared backing storage (never mutated after construction)
	shape  Shape     // Tensor dimensions
	stride []int     // Row-major strides
	dtype  DataType  // Storage width
	offset int       // Offset for row views
}

// FromFloat64 builds a tensor of the given shape and width from row-major values.
// The values are copied; Float32 tensors round each value through float32.
func FromFloat64(shape Shape, values []float64, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(values), shape)
	}

	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = round(v, dtype)
	}

	return &Tensor{
		data:   data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Len returns the length of the outermost axis.
func (t *Tensor) Len() int {
	return t.shape[0]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// At returns the element at the given index. Panics on a bad index.
func (t *Tensor) At(idx ...int) float64 {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: At needs %d indices, got %d", len(t.shape), len(idx)))
	}
	pos := t.offset
	for i, j := range idx {
		if j < 0 || j >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d (len %d)", j, i, t.shape[i]))
		}
		pos += j * t.stride[i]
	}
	return t.data[pos]
}

// Row returns the i-th slice along the outermost axis as a rank-(k-1) view.
// Panics for rank-1 tensors or a bad index.
func (t *Tensor) Row(i int) *Tensor {
	if len(t.shape) < 2 {
		panic("tensor: Row requires rank >= 2")
	}
	if i < 0 || i >= t.shape[0] {
		panic(fmt.Sprintf("tensor: row %d out of range (len %d)", i, t.shape[0]))
	}
	return &Tensor{
		data:   t.data,
		shape:  t.shape[1:].Clone(),
		stride: t.stride[1:],
		dtype:  t.dtype,
		offset: t.offset + i*t.stride[0],
	}
}

// Values returns a row-major copy of the elements.
func (t *Tensor) Values() []float64 {
	n := t.NumElements()
	out := make([]float64, n)
	copy(out, t.data[t.offset:t.offset+n])
	return out
}

// values exposes the backing elements without copying.
func (t *Tensor) values() []float64 {
	return t.data[t.offset : t.offset+t.NumElements()]
}

// AsType returns the tensor at the requested width. Widening reuses the
// backing storage; narrowing rounds every value.
func (t *Tensor) AsType(dtype DataType) *Tensor {
	if dtype == t.dtype {
		return t
	}
	if dtype == Float64 {
		return &Tensor{data: t.data, shape: t.shape, stride: t.stride, dtype: Float64, offset: t.offset}
	}
	out, _ := FromFloat64(t.shape, t.values(), dtype)
	return out
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s)", []int(t.shape), t.dtype)
}

func round(v float64, dtype DataType) float64 {
	if dtype == Float32 {
		return float64(float32(v))
	}
	return v
}
