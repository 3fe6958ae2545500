// Package serialization renders tensors into the data formats gnuplot reads.
//
// Two contracts are supported:
//
//	Text (WriteArray):
//	  rank 1: <prefix> v0<item>v1<item>... <suffix>
//	  rank 2: one line per row, the block closed by an extra <suffix>
//	          (a blank line with the default separators)
//	  rank 3+: each outer slice serialized recursively, slices joined by <block>
//
//	Binary grid (WriteGridBinary), gnuplot "binary matrix" layout:
//	  [N   x0   x1   ... x(N-1)]
//	  [y0  z00  z10  ... z(N-1)0]
//	  [y1  z01  z11  ... z(N-1)1]
//	  ...
//
// Binary values are written at the tensor's width in the host byte order,
// which is what gnuplot's binary reader assumes by default. ReadGridBinary
// and ReadGridFile decode the same layout; ReadGridFile maps the file
// instead of reading it.
//
// Example usage:
//
//	t := tensor.MustCoerce([][]int{{0, 0}, {1, 1}, {2, 4}})
//	if err := serialization.WriteArray(os.Stdout, t, serialization.GnuplotSeparators); err != nil {
//	    log.Fatal(err)
//	}
package serialization
