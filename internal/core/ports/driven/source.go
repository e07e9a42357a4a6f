package driven

import "context"

// SourceEntry is one candidate file in a source directory.
type SourceEntry struct {
	// Name is the entry name as listed.
	Name string

	// Path is the full path used to read the entry.
	Path string
}

// SourceReader discovers and reads book source files.
type SourceReader interface {
	// List returns the regular files of dir in listing order.
	List(ctx context.Context, dir string) ([]SourceEntry, error)

	// Read returns the full UTF-8 text of a file.
	// Failures wrap domain.ErrIO.
	Read(ctx context.Context, path string) (string, error)
}
