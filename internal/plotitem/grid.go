package plotitem

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joaquinabian/gnuplot-go/internal/serialization"
	"github.com/joaquinabian/gnuplot-go/internal/tempfile"
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// GridData plots values tabulated on a grid: values[i][j] is the height at
// (xs[i], ys[j]). Grids are sent in gnuplot's binary matrix format unless
// the binary option is turned off, or left unset for an engine that cannot
// read binary grids.
type GridData struct {
	*base
	xs, ys, values *tensor.Tensor
}

// NewGridData creates a grid item. Nil coordinates default to 0..n-1.
// values must have shape (len(xs), len(ys)).
func NewGridData(values, xs, ys any, opts ...Option) (*GridData, error) {
	gx, gy, gz, err := buildGrid(values, xs, ys)
	if err != nil {
		return nil, err
	}

	g := &GridData{base: newBase(KindGrid), xs: gx, ys: gy, values: gz}
	g.render = g.renderGrid
	if err := g.SetOptions(opts...); err != nil {
		return nil, err
	}
	return g, nil
}

// Coordinates returns the x and y coordinate vectors.
func (g *GridData) Coordinates() (xs, ys *tensor.Tensor) {
	return g.xs, g.ys
}

// Values returns the grid values.
func (g *GridData) Values() *tensor.Tensor {
	return g.values
}

func (g *GridData) renderGrid(env Env) (rendering, error) {
	_, explicit := g.options[KeyBinary]
	binary := g.boolOption(KeyBinary, !env.DisableBinary)
	if binary && explicit && env.DisableBinary {
		return rendering{}, &OptionError{Kind: KindGrid, Key: KeyBinary, Value: true, Reason: "engine does not read binary grids"}
	}

	write := g.writeText
	ext := ".dat"
	clause := ""
	if binary {
		write = g.writeBinary
		ext = ".bin"
		clause = " " + binaryClause(serialization.GridDType(g.xs, g.ys, g.values))
	}

	if g.boolOption(KeyInline, env.PreferInline) {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return rendering{}, err
		}
		if !binary {
			buf.WriteString(serialization.InlineTerminator)
		}
		return rendering{source: InlineSource + clause, skip: []string{KeyBinary}, data: buf.Bytes()}, nil
	}

	temp := tempfile.New(env.TempDir, ext)
	if err := temp.WriteFile(write); err != nil {
		return rendering{}, err
	}
	return rendering{source: Quote(temp.Path()) + clause, skip: []string{KeyBinary}, temp: temp}, nil
}

func (g *GridData) writeBinary(w io.Writer) error {
	return serialization.WriteGridBinary(w, g.xs, g.ys, g.values)
}

func (g *GridData) writeText(w io.Writer) error {
	return serialization.WriteGridText(w, g.xs, g.ys, g.values)
}

// SaveGridData writes a grid to a caller-owned file and returns a File item
// carrying the matching binary option.
func SaveGridData(path string, values, xs, ys any, binary bool, opts ...Option) (*File, error) {
	gx, gy, gz, err := buildGrid(values, xs, ys)
	if err != nil {
		return nil, err
	}

	write := func(w io.Writer) error { return serialization.WriteGridText(w, gx, gy, gz) }
	if binary {
		write = func(w io.Writer) error { return serialization.WriteGridBinary(w, gx, gy, gz) }
		spec := binaryClause(serialization.GridDType(gx, gy, gz))
		opts = append(opts, BinaryFormat(spec[len("binary "):]))
	}
	if err := writeFile(path, write); err != nil {
		return nil, err
	}
	return NewFile(path, opts...)
}

// LoadGridData reads a binary grid file, as written by SaveGridData, back
// into a GridData item. dtype must match the width the file was saved with.
func LoadGridData(path string, dtype tensor.DataType, opts ...Option) (*GridData, error) {
	grid, err := serialization.ReadGridFile(path, dtype)
	if err != nil {
		return nil, err
	}

	values, err := tensor.Coerce(grid.Z)
	if err != nil {
		return nil, err
	}
	xs, err := tensor.Coerce(grid.X)
	if err != nil {
		return nil, err
	}
	ys, err := tensor.Coerce(grid.Y)
	if err != nil {
		return nil, err
	}
	return NewGridData(values.AsType(dtype), xs.AsType(dtype), ys.AsType(dtype), opts...)
}

func binaryClause(dtype tensor.DataType) string {
	if dtype == tensor.Float64 {
		return `binary matrix format="%float64"`
	}
	return "binary matrix"
}

func buildGrid(values, xs, ys any) (gx, gy, gz *tensor.Tensor, err error) {
	gz, err = tensor.Coerce(values)
	if err != nil {
		return nil, nil, nil, err
	}
	if gz.Rank() != 2 {
		return nil, nil, nil, fmt.Errorf("%w: grid values must be 2-D, got shape %v", ErrShape, gz.Shape())
	}

	shape := gz.Shape()
	if gx, err = coordinates(xs, shape[0]); err != nil {
		return nil, nil, nil, fmt.Errorf("x coordinates: %w", err)
	}
	if gy, err = coordinates(ys, shape[1]); err != nil {
		return nil, nil, nil, fmt.Errorf("y coordinates: %w", err)
	}
	if err := serialization.ValidateGrid(gx, gy, gz); err != nil {
		return nil, nil, nil, err
	}
	return gx, gy, gz, nil
}

func coordinates(v any, n int) (*tensor.Tensor, error) {
	if v == nil {
		return tensor.Arange(n)
	}
	if t, ok := v.(*tensor.Tensor); ok && t == nil {
		return tensor.Arange(n)
	}
	return tensor.Coerce(v)
}
