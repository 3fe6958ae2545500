// Package plotitem encodes plottable sources for gnuplot.
//
// An Item turns one source (a function expression, an existing file, an
// in-memory array, or a 2-D grid) plus its options into a command
// fragment such as
//
//	"/tmp/gnupipe-1b9d….dat" using 1:2 every 5 title "cos" with lines
//
// and, for inline transfer, the data block that must follow the command
// line. File-backed items write their data to a scratch file the first
// time they are rendered and keep it until their last reference is
// released.
//
// Options are checked against a fixed per-kind table when set:
//
//	Func:     title with axes
//	File:     title with axes using every index smooth binary
//	Data:     title with axes using every index smooth inline
//	GridData: title with axes using every index smooth inline binary
//
// Example:
//
//	d, err := plotitem.NewColumns([]any{xs, ys}, plotitem.Title("x^2"), plotitem.With("lines"))
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
package plotitem
