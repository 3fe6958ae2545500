package serialization

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// WriteArray writes t to w in the nested text layout described by sep.
//
// The whole tensor is rendered before anything reaches w, so a failure never
// leaves partial output behind.
func WriteArray(w io.Writer, t *tensor.Tensor, sep Separators) error {
	if t == nil {
		return fmt.Errorf("%w: nil tensor", ErrShape)
	}

	var buf bytes.Buffer
	buf.Grow(t.NumElements() * 8)
	writeNested(&buf, t, sep)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write array: %w", err)
	}
	return nil
}

// WriteValues coerces v and writes it like WriteArray. Ragged or
// non-numeric input fails before any output.
func WriteValues(w io.Writer, v any, sep Separators) error {
	t, err := tensor.Coerce(v)
	if err != nil {
		return err
	}
	return WriteArray(w, t, sep)
}

func writeNested(buf *bytes.Buffer, t *tensor.Tensor, sep Separators) {
	switch t.Rank() {
	case 1:
		buf.WriteString(sep.Prefix)
		writeLine(buf, t, sep.Item)
		buf.WriteString(sep.Suffix)
	case 2:
		// Unrolled rather than recursive: rows carry no nested prefix of
		// their own beyond the one doubled on the first row.
		buf.WriteString(sep.Prefix)
		buf.WriteString(sep.Prefix)
		writeLine(buf, t.Row(0), sep.Item)
		buf.WriteString(sep.Suffix)
		for i := 1; i < t.Len(); i++ {
			buf.WriteString(sep.Block)
			buf.WriteString(sep.Prefix)
			writeLine(buf, t.Row(i), sep.Item)
			buf.WriteString(sep.Suffix)
		}
		buf.WriteString(sep.Suffix)
	default:
		buf.WriteString(sep.Prefix)
		writeNested(buf, t.Row(0), sep)
		for i := 1; i < t.Len(); i++ {
			buf.WriteString(sep.Block)
			writeNested(buf, t.Row(i), sep)
		}
	}
}

func writeLine(buf *bytes.Buffer, row *tensor.Tensor, item string) {
	dtype := row.DType()
	scratch := make([]byte, 0, 24)
	for j := 0; j < row.Len(); j++ {
		if j > 0 {
			buf.WriteString(item)
		}
		scratch = appendValue(scratch[:0], row.At(j), dtype)
		buf.Write(scratch)
	}
}
