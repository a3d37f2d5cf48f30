// Package store persists the working dataset to a cache directory so an
// interrupted editing session can be resumed without an explicit save.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paceview/paceview/internal/dataset"
)

// CacheKey names the cache entry; the cache file is <dir>/<CacheKey>.json.
const CacheKey = "ai-progress-data"

// Store reads and writes the autosave cache under a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, CacheKey+".json")
}

// Exists reports whether a cached dataset is present.
func (s *Store) Exists() bool {
	fi, err := os.Stat(s.Path())
	return err == nil && !fi.IsDir()
}

// Save writes the dataset to the cache. The write goes through a temp
// file and rename so a crash cannot leave a torn cache entry.
func (s *Store) Save(d *dataset.Dataset) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, CacheKey+"-*.json")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

// Load reads and validates the cached dataset.
func (s *Store) Load() (*dataset.Dataset, error) {
	return dataset.Load(s.Path())
}

// Clear removes the cache entry if present.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
