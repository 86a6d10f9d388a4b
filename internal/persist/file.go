package persist

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileAdapter stores one JSON file per key under a base directory. It is the
// durable default for local mode, mirroring what browser local storage does
// for the original client: one serialized snapshot per store, rewritten
// wholesale.
type FileAdapter struct {
	dir string
}

// NewFileAdapter creates the base directory if needed.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileAdapter{dir: dir}, nil
}

func (a *FileAdapter) path(key string) string {
	// Keys carry a "namespace:name" shape; colons are awkward in filenames.
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(a.dir, name)
}

func (a *FileAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(a.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (a *FileAdapter) Save(ctx context.Context, key string, data []byte) error {
	tmp := a.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, a.path(key))
}
