// Package media serves static certificate, video and product files.
package media

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidPath is returned for paths that escape the media root.
var ErrInvalidPath = errors.New("invalid media path")

// Store is a read-only view of the media directory.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store over fs. Paths are relative to its root.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: afero.NewReadOnlyFs(fs)}
}

// NewDirStore roots a Store at dir on the OS filesystem.
func NewDirStore(dir string) *Store {
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// Exists reports whether path names a regular file.
func (s *Store) Exists(p string) bool {
	name, err := clean(p)
	if err != nil {
		return false
	}

	info, err := s.fs.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Open opens path for reading. The caller closes the returned reader.
func (s *Store) Open(p string) (io.ReadCloser, error) {
	name, err := clean(p)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open media %q: %w", p, err)
	}
	return f, nil
}

func clean(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", ErrInvalidPath
	}

	name := path.Clean(strings.TrimPrefix(p, "/"))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return name, nil
}
