package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend is a flat key-value store holding opaque JSON blobs.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// FileBackend keeps one JSON file per key inside a directory.
type FileBackend struct {
	dataDir string
}

func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dataDir: dataDir}, nil
}

func (b *FileBackend) file(key string) string {
	return filepath.Join(b.dataDir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.file(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (b *FileBackend) Set(key string, value []byte) error {
	return os.WriteFile(b.file(key), value, 0644)
}

func (b *FileBackend) Delete(key string) error {
	if err := os.Remove(b.file(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
