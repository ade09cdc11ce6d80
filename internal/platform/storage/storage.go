// Package storage provides the opaque byte store documents are saved to and
// read from. The rest of the system treats it as save/read/exists only.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Storage abstracts the document byte store.
type Storage interface {
	// Save writes data under a unique name derived from filename and returns
	// the storage path.
	Save(filename string, data []byte) (string, error)

	// Read returns the bytes previously saved at path.
	Read(path string) ([]byte, error)

	// Exists reports whether path holds a saved document.
	Exists(path string) bool
}

// Local stores documents on the local filesystem under a base directory.
type Local struct {
	baseDir string
}

// NewLocal creates a local byte store rooted at baseDir, creating the
// directory if needed.
func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &Local{baseDir: baseDir}, nil
}

var _ Storage = (*Local)(nil)

// Save prefixes the filename with a timestamp so repeated uploads of the
// same file never collide.
func (l *Local) Save(filename string, data []byte) (string, error) {
	uniqueName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
	path := filepath.Join(l.baseDir, uniqueName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Read returns the stored bytes.
func (l *Local) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the file is present.
func (l *Local) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
