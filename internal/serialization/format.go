package serialization

import (
	"strconv"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// Separators control the text layout produced by WriteArray.
type Separators struct {
	Item   string // Between values on one line
	Prefix string // Before each nested element
	Suffix string // After each innermost line, and once more after each 2-D block
	Block  string // Between sibling rows and sibling blocks
}

// Standard separator sets.
var (
	// GnuplotSeparators produce whitespace-separated columns with blank
	// lines between blocks.
	GnuplotSeparators = Separators{Item: " ", Prefix: "", Suffix: "\n", Block: ""}

	// MathematicaSeparators produce nested {a,b},{c,d} lists.
	MathematicaSeparators = Separators{Item: ",", Prefix: "{", Suffix: "}", Block: ",\n"}
)

// InlineTerminator ends an inline data block in the command stream.
const InlineTerminator = "e\n"

// FormatValue renders v with the shortest representation that round-trips
// at the given width.
func FormatValue(v float64, dtype tensor.DataType) string {
	return strconv.FormatFloat(v, 'g', -1, dtype.Bits())
}

func appendValue(dst []byte, v float64, dtype tensor.DataType) []byte {
	return strconv.AppendFloat(dst, v, 'g', -1, dtype.Bits())
}
