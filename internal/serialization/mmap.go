package serialization

import (
	"fmt"
	"os"

	"github.com/joaquinabian/gnuplot-go/internal/tensor"
)

// ReadGridFile decodes a binary grid file written by WriteGridBinary. The
// file is mapped read-only rather than copied into a buffer, since grids
// saved for splot are often large.
func ReadGridFile(path string, dtype tensor.DataType) (*Grid, error) {
	//nolint:gosec // G304: the caller names the grid file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat grid file: %w", err)
	}
	if stat.Size() == 0 {
		return nil, fmt.Errorf("%w: empty grid file %s", ErrTruncated, path)
	}

	data, err := mmapFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	// decodeGrid copies every value out of the mapping.
	g, err := decodeGrid(data, dtype)
	if unmapErr := munmapFile(data); unmapErr != nil && err == nil {
		err = unmapErr
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
