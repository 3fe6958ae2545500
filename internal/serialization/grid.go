package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// GridDType returns the width used to encode a grid: the widest of the
// coordinate and value tensors.
func GridDType(xs, ys, values *tensor.Tensor) tensor.DataType {
	return tensor.Wider(values.DType(), tensor.Wider(xs.DType(), ys.DType()))
}

// ValidateGrid checks that xs and ys are vectors and values has shape
// (len(xs), len(ys)).
func ValidateGrid(xs, ys, values *tensor.Tensor) error {
	if xs == nil || ys == nil || values == nil {
		return fmt.Errorf("%w: grid needs coordinates and values", ErrShape)
	}
	if xs.Rank() != 1 || ys.Rank() != 1 {
		return fmt.Errorf("%w: grid coordinates must be 1-D, got %v and %v", ErrShape, xs.Shape(), ys.Shape())
	}
	want := tensor.Shape{xs.Len(), ys.Len()}
	if !values.Shape().Equal(want) {
		return fmt.Errorf("%w: grid values have shape %v, coordinates need %v", ErrShape, values.Shape(), want)
	}
	return nil
}

// WriteGridBinary writes a 2-D grid in gnuplot's binary matrix layout:
// a header of len(xs) followed by xs, then one record per y holding y and
// the values at that y for every x.
func WriteGridBinary(w io.Writer, xs, ys, values *tensor.Tensor) error {
	if err := ValidateGrid(xs, ys, values); err != nil {
		return err
	}

	dtype := GridDType(xs, ys, values)
	nx, ny := xs.Len(), ys.Len()

	var buf bytes.Buffer
	buf.Grow((nx + 1) * (ny + 1) * dtype.Size())
	enc := encoder{buf: &buf, dtype: dtype}

	enc.put(float64(nx))
	for i := 0; i < nx; i++ {
		enc.put(xs.At(i))
	}
	for j := 0; j < ny; j++ {
		enc.put(ys.At(j))
		for i := 0; i < nx; i++ {
			enc.put(values.At(i, j))
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write binary grid: %w", err)
	}
	return nil
}

type encoder struct {
	buf     *bytes.Buffer
	dtype   tensor.DataType
	scratch [8]byte
}

func (e *encoder) put(v float64) {
	switch e.dtype {
	case tensor.Float32:
		binary.NativeEndian.PutUint32(e.scratch[:4], math.Float32bits(float32(v)))
		e.buf.Write(e.scratch[:4])
	default:
		binary.NativeEndian.PutUint64(e.scratch[:], math.Float64bits(v))
		e.buf.Write(e.scratch[:])
	}
}

// GridTriples builds the (len(xs), len(ys), 3) tensor of (x, y, z) triples
// that gnuplot reads as one scan line per x.
func GridTriples(xs, ys, values *tensor.Tensor) (*tensor.Tensor, error) {
	if err := ValidateGrid(xs, ys, values); err != nil {
		return nil, err
	}

	nx, ny := xs.Len(), ys.Len()
	out := make([]float64, 0, nx*ny*3)
	for i := 0; i < nx; i++ {
		x := xs.At(i)
		for j := 0; j < ny; j++ {
			out = append(out, x, ys.At(j), values.At(i, j))
		}
	}
	return tensor.FromFloat64(tensor.Shape{nx, ny, 3}, out, GridDType(xs, ys, values))
}

// WriteGridText writes a grid as blank-line separated scans of "x y z" lines.
func WriteGridText(w io.Writer, xs, ys, values *tensor.Tensor) error {
	triples, err := GridTriples(xs, ys, values)
	if err != nil {
		return err
	}
	return WriteArray(w, triples, GnuplotSeparators)
}
