package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileGateway persists each key as a file inside a directory. Writes go
// through a temp file and an atomic rename so a value is either stored
// whole or not at all.
type FileGateway struct {
	dir string
}

// NewFileGateway creates the data directory if needed and returns a gateway
// rooted at it.
func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileGateway{dir: dir}, nil
}

// Get reads the value stored under key. A missing file is not an error.
func (g *FileGateway) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(g.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes the value under key atomically.
func (g *FileGateway) Set(key, value string) error {
	tmp, err := os.CreateTemp(g.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for key %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for key %q: %w", key, err)
	}
	if err := os.Rename(tmpName, g.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing key %q: %w", key, err)
	}
	return nil
}

func (g *FileGateway) path(key string) string {
	return filepath.Join(g.dir, key)
}
