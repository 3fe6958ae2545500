//go:build unix

package serialization

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps the grid file copy-on-write, so a concurrent writer of the
// same path never changes the bytes being decoded.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	if size > math.MaxInt {
		return nil, fmt.Errorf("%w: grid file of %d bytes cannot be mapped", ErrFormat, size)
	}
	fd := int(f.Fd()) //nolint:gosec // G115: descriptors fit in int
	return unix.Mmap(fd, 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
}

func munmapFile(data []byte) error {
	return unix.Munmap(data)
}
