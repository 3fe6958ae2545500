// Package tempfile manages the scratch files plot items hand to gnuplot.
package tempfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// ErrResource reports a failure to create or delete a scratch file.
var ErrResource = errors.New("temporary file error")

// Prefix starts every scratch file name.
const Prefix = "gnupipe-"

// Resource is a lazily created, uniquely named scratch file.
//
// Release deletes the file exactly once; it is safe to call repeatedly,
// before Acquire, or after the file vanished. If the owner is garbage
// collected without releasing, a runtime cleanup removes the file.
type Resource struct {
	mu       sync.Mutex
	dir      string
	ext      string
	path     string
	released bool
	cleanup  runtime.Cleanup
}

// New returns an unacquired resource. An empty dir means os.TempDir().
func New(dir, ext string) *Resource {
	return &Resource{dir: dir, ext: ext}
}

// Acquire creates the file and returns it for writing. The caller must
// close the returned writer; the file itself stays until Release.
func (r *Resource) Acquire() (io.WriteCloser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path != "" || r.released {
		return nil, fmt.Errorf("%w: resource already acquired", ErrResource)
	}

	dir := r.dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, Prefix+uuid.NewString()+r.ext)

	//nolint:gosec // G304: path is built from the configured temp dir and a fresh UUID
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}

	r.path = path
	r.cleanup = runtime.AddCleanup(r, removeQuietly, path)
	return f, nil
}

// Path returns the file path, or "" before Acquire.
func (r *Resource) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Acquired reports whether the file exists on behalf of this resource.
func (r *Resource) Acquired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path != "" && !r.released
}

// Release deletes the file. A file that is already gone counts as released.
func (r *Resource) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" || r.released {
		return nil
	}
	r.released = true
	r.cleanup.Stop()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrResource, err)
	}
	return nil
}

// WriteFile acquires r and fills it using write.
func (r *Resource) WriteFile(write func(io.Writer) error) error {
	f, err := r.Acquire()
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = r.Release()
		return err
	}
	if err := f.Close(); err != nil {
		_ = r.Release()
		return fmt.Errorf("%w: %w", ErrResource, err)
	}
	return nil
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}
