package storage

import (
	"os"
	"path/filepath"
)

// File is the fallback backend: one JSON file per key in a local directory.
type File struct {
	dir string
}

// NewFile creates a file backend rooted at dir
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the blob for key. A missing file is (nil, nil), not an error.
func (f *File) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save writes the blob atomically via a temp file and rename
func (f *File) Save(key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Purge removes the file for key if it exists
func (f *File) Purge(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *File) Close() error { return nil }
