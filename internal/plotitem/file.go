package plotitem

// File plots an existing data file. The file belongs to the caller and is
// never deleted by the item.
type File struct {
	*base
	path string
}

// NewFile creates a file item.
func NewFile(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, &OptionError{Kind: KindFile, Key: "filename", Value: path, Reason: "empty filename"}
	}

	f := &File{base: newBase(KindFile), path: path}
	f.render = func(Env) (rendering, error) {
		return rendering{source: Quote(f.path)}, nil
	}
	if err := f.SetOptions(opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the referenced file path.
func (f *File) Path() string {
	return f.path
}
