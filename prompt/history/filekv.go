package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV implements KV as one JSON file per key under a directory. It backs
// history persistence on machines without a Redis instance.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

// Get reads the value file for key.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, true, nil
}

// Set replaces the value file for key atomically.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
