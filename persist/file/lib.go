// Package file stores list nodes as files in a directory, named by
// their content hash.
package file

import (
	"context"
	"os"
	"path/filepath"
)

// Persist implements the alist.Persist interface for storing and
// loading nodes from files.
type Persist struct {
	basepath string
}

// NewPersistForPath returns a Persist that loads and stores nodes as
// files in the directory at the given path.
func NewPersistForPath(path string) Persist {
	return Persist{path}
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.basepath, name))
}

// Store persists the given bytes in a file of the given name, if it
// doesn't exist already.  Names are content hashes, so an existing
// file already holds the same bytes.
func (p Persist) Store(_ context.Context, name string, data []byte) error {
	path := filepath.Join(p.basepath, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.WriteFile(path, data, 0o644)
	}
	return nil
}
