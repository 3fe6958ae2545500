package plotitem

import (
	"fmt"

	"github.com/joaquinabian/gnuplot-go/internal/parallel"
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// ComputeData tabulates f at each x and returns the (x, f(x)) pairs as a
// data item. Large inputs are evaluated on several goroutines, so f must be
// safe for concurrent use.
func ComputeData(xs any, f func(x float64) float64, opts ...Option) (*Data, error) {
	xt, err := tensor.Coerce(xs)
	if err != nil {
		return nil, err
	}
	if xt.Rank() != 1 {
		return nil, fmt.Errorf("%w: x values must be 1-D, got shape %v", ErrShape, xt.Shape())
	}

	x := xt.Values()
	pairs := make([]float64, 2*len(x))
	parallel.For(len(x), func(i int) {
		pairs[2*i] = x[i]
		pairs[2*i+1] = f(x[i])
	}, parallel.DefaultConfig())
	t, err := tensor.FromFloat64(tensor.Shape{len(x), 2}, pairs, tensor.Float64)
	if err != nil {
		return nil, err
	}
	return NewData(t, opts...)
}

// ComputeGridData tabulates f on the grid xs × ys into float64 values.
// Rows are evaluated on several goroutines, so f must be safe for
// concurrent use.
func ComputeGridData(xs, ys any, f func(x, y float64) float64, opts ...Option) (*GridData, error) {
	xt, err := tensor.Coerce(xs)
	if err != nil {
		return nil, err
	}
	yt, err := tensor.Coerce(ys)
	if err != nil {
		return nil, err
	}
	if xt.Rank() != 1 || yt.Rank() != 1 {
		return nil, fmt.Errorf("%w: grid coordinates must be 1-D", ErrShape)
	}

	x, y := xt.Values(), yt.Values()
	values := make([]float64, len(x)*len(y))
	parallel.ForGrid(len(x), len(y), func(i, j int) {
		values[i*len(y)+j] = f(x[i], y[j])
	}, parallel.DefaultConfig())
	zt, err := tensor.FromFloat64(tensor.Shape{len(x), len(y)}, values, tensor.Float64)
	if err != nil {
		return nil, err
	}
	return NewGridData(zt, xt, yt, opts...)
}
