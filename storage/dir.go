package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir stores each blob as <key>.json in a directory.
type Dir string

// NewDir returns a Dir storage, creating the directory if needed.
func NewDir(path string) (Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("cannot create storage directory: %w", err)
	}
	return Dir(path), nil
}

func (d Dir) file(key string) string { return filepath.Join(string(d), key+".json") }

// Load returns the content of the blob stored under key.
func (d Dir) Load(key string) ([]byte, error) {
	return os.ReadFile(d.file(key))
}

// Save replaces the blob stored under key.
//
// The content is written to a temporary file renamed over the previous one,
// so a blob is either the old or the new content.
func (d Dir) Save(key string, data []byte) error {
	tmp, err := os.CreateTemp(string(d), key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot save %q: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot save %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot save %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), d.file(key)); err != nil {
		return fmt.Errorf("cannot save %q: %w", key, err)
	}
	return nil
}
