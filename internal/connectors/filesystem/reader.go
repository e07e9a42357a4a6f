package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SourceReader = (*Reader)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lists and reads plain-text book files.
type Reader struct{}

// New creates a filesystem reader.
func New() *Reader {
	return &Reader{}
}

// List returns the regular files of dir, sorted by name.
// Subdirectories are not descended into.
func (r *Reader) List(ctx context.Context, dir string) ([]driven.SourceEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir = ResolvePath(dir)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}

	entries := make([]driven.SourceEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			// Follow symlinks to regular files.
			if de.Type()&os.ModeSymlink == 0 {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, de.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		entries = append(entries, driven.SourceEntry{
			Name: de.Name(),
			Path: filepath.Join(dir, de.Name()),
		})
	}
	return entries, nil
}

// Read returns the whole file as text. A leading byte order mark is dropped.
// Content that is not valid UTF-8 is rejected.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path = ResolvePath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrIO, path)
	}
	return string(data), nil
}
