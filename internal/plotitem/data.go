package plotitem

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/joaquinabian/gnuplot-go/internal/serialization"
	"github.com/joaquinabian/gnuplot-go/internal/tempfile"
	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// InlineSource is the source clause for data that follows the command line.
const InlineSource = `"-"`

// Data plots an in-memory array. A rank-1 array is one value per point,
// plotted against its index; higher ranks hold one point per row.
type Data struct {
	*base
	data *tensor.Tensor
}

// NewData creates a data item from a tensor or nested numeric slices.
// Cols selects columns before anything is stored.
func NewData(v any, opts ...Option) (*Data, error) {
	cols, rest, err := splitOptions(opts)
	if err != nil {
		return nil, err
	}
	t, err := tensor.Coerce(v)
	if err != nil {
		return nil, err
	}
	t, err = prepareData(t, cols)
	if err != nil {
		return nil, err
	}
	return newData(t, rest)
}

// NewColumns creates a data item from one input per column, so
// NewColumns([]any{x, y}) pairs x[i] with y[i].
func NewColumns(columns []any, opts ...Option) (*Data, error) {
	cols, rest, err := splitOptions(opts)
	if err != nil {
		return nil, err
	}
	t, err := tensor.Columns(columns...)
	if err != nil {
		return nil, err
	}
	t, err = prepareData(t, cols)
	if err != nil {
		return nil, err
	}
	return newData(t, rest)
}

func newData(t *tensor.Tensor, opts []Option) (*Data, error) {
	d := &Data{base: newBase(KindData), data: t}
	d.render = d.renderData
	if err := d.SetOptions(opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Tensor returns the stored data.
func (d *Data) Tensor() *tensor.Tensor {
	return d.data
}

func (d *Data) renderData(env Env) (rendering, error) {
	if d.boolOption(KeyInline, env.PreferInline) {
		var buf bytes.Buffer
		if err := serialization.WriteArray(&buf, d.data, serialization.GnuplotSeparators); err != nil {
			return rendering{}, err
		}
		buf.WriteString(serialization.InlineTerminator)
		return rendering{source: InlineSource, data: buf.Bytes()}, nil
	}

	temp := tempfile.New(env.TempDir, ".dat")
	err := temp.WriteFile(func(w io.Writer) error {
		return serialization.WriteArray(w, d.data, serialization.GnuplotSeparators)
	})
	if err != nil {
		return rendering{}, err
	}
	return rendering{source: Quote(temp.Path()), temp: temp}, nil
}

// SaveData writes data to a caller-owned file and returns a File item for it.
func SaveData(path string, v any, opts ...Option) (*File, error) {
	cols, rest, err := splitOptions(opts)
	if err != nil {
		return nil, err
	}
	t, err := tensor.Coerce(v)
	if err != nil {
		return nil, err
	}
	t, err = prepareData(t, cols)
	if err != nil {
		return nil, err
	}

	err = writeFile(path, func(w io.Writer) error {
		return serialization.WriteArray(w, t, serialization.GnuplotSeparators)
	})
	if err != nil {
		return nil, err
	}
	return NewFile(path, rest...)
}

func prepareData(t *tensor.Tensor, cols []int) (*tensor.Tensor, error) {
	if t.Rank() == 1 {
		var err error
		t, err = tensor.FromFloat64(tensor.Shape{t.Len(), 1}, t.Values(), t.DType())
		if err != nil {
			return nil, err
		}
	}
	if cols != nil {
		return tensor.Take(t, cols)
	}
	return t, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	//nolint:gosec // G304: the caller chose the output path
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
