package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// ParseText decodes line-oriented output of WriteArray back into blocks of
// rows, rounding each value to dtype. Empty lines close a block. Only
// separator sets whose Suffix ends lines (such as GnuplotSeparators) can be
// parsed.
func ParseText(r io.Reader, sep Separators, dtype tensor.DataType) ([][][]float64, error) {
	if sep.Suffix == "" || sep.Item == "" {
		return nil, fmt.Errorf("%w: separators need a suffix and an item separator", ErrFormat)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read text data: %w", err)
	}

	var (
		blocks  [][][]float64
		current [][]float64
	)
	lines := strings.Split(string(raw), sep.Suffix)
	for n, line := range lines {
		line = trimLeading(line, sep.Block, sep.Prefix)
		if line == "" {
			if current != nil {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}

		fields := strings.Split(line, sep.Item)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, dtype.Bits())
			if err != nil {
				return nil, &FormatError{Type: "bad_number", Line: n + 1, Details: fmt.Sprintf("field %d: %q", i, f)}
			}
			row[i] = v
		}
		current = append(current, row)
	}
	if current != nil {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

func trimLeading(s string, cuts ...string) string {
	for {
		trimmed := s
		for _, c := range cuts {
			if c != "" {
				trimmed = strings.TrimPrefix(trimmed, c)
			}
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// Grid is a decoded 2-D grid. Z[i][j] is the value at (X[i], Y[j]).
type Grid struct {
	X []float64
	Y []float64
	Z [][]float64
}

// ReadGridBinary decodes the layout written by WriteGridBinary.
func ReadGridBinary(r io.Reader, dtype tensor.DataType) (*Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary grid: %w", err)
	}
	return decodeGrid(raw, dtype)
}

func decodeGrid(raw []byte, dtype tensor.DataType) (*Grid, error) {
	size := dtype.Size()
	if len(raw)%size != 0 || len(raw) == 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %s values", ErrTruncated, len(raw), dtype)
	}
	vals := decodeFloats(raw, dtype)

	nx := int(vals[0])
	if float64(nx) != vals[0] || nx < 1 {
		return nil, &FormatError{Type: "bad_header", Details: fmt.Sprintf("column count %v", vals[0])}
	}
	rowLen := nx + 1
	if len(vals)%rowLen != 0 || len(vals) < 2*rowLen {
		return nil, fmt.Errorf("%w: %d values do not form records of %d", ErrTruncated, len(vals), rowLen)
	}
	ny := len(vals)/rowLen - 1

	g := &Grid{
		X: append([]float64(nil), vals[1:rowLen]...),
		Y: make([]float64, ny),
		Z: make([][]float64, nx),
	}
	for i := range g.Z {
		g.Z[i] = make([]float64, ny)
	}
	for j := 0; j < ny; j++ {
		rec := vals[(j+1)*rowLen : (j+2)*rowLen]
		g.Y[j] = rec[0]
		for i := 0; i < nx; i++ {
			g.Z[i][j] = rec[i+1]
		}
	}
	return g, nil
}

// GridFromText rebuilds a grid from the scan blocks of WriteGridText.
func GridFromText(blocks [][][]float64) (*Grid, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no grid blocks", ErrTruncated)
	}

	ny := len(blocks[0])
	g := &Grid{X: make([]float64, len(blocks)), Y: make([]float64, ny), Z: make([][]float64, len(blocks))}
	for i, block := range blocks {
		if len(block) != ny {
			return nil, fmt.Errorf("%w: scan %d has %d points, want %d", ErrShape, i, len(block), ny)
		}
		g.Z[i] = make([]float64, ny)
		for j, p := range block {
			if len(p) != 3 {
				return nil, &FormatError{Type: "bad_point", Details: fmt.Sprintf("scan %d point %d has %d fields", i, j, len(p))}
			}
			g.X[i] = p[0]
			if i == 0 {
				g.Y[j] = p[1]
			}
			g.Z[i][j] = p[2]
		}
	}
	return g, nil
}

func decodeFloats(raw []byte, dtype tensor.DataType) []float64 {
	rd := bytes.NewReader(raw)
	out := make([]float64, 0, len(raw)/dtype.Size())
	switch dtype {
	case tensor.Float32:
		var bits uint32
		for binary.Read(rd, binary.NativeEndian, &bits) == nil {
			out = append(out, float64(math.Float32frombits(bits)))
		}
	default:
		var bits uint64
		for binary.Read(rd, binary.NativeEndian, &bits) == nil {
			out = append(out, math.Float64frombits(bits))
		}
	}
	return out
}
