// Package fs provides file-based storage for formulary.
package fs

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/formulary"
)

// Ensure KVStore implements formulary.KVStore at compile time.
var _ formulary.KVStore = (*KVStore)(nil)

// KVStore implements formulary.KVStore with one file per key under a
// directory. Values are written to a sibling .tmp file and renamed into place,
// so a reader sees either the old or the new value, never a partial write.
type KVStore struct {
	dir string
}

// NewKVStore creates a KVStore rooted at dir. The directory is created on the
// first Put.
func NewKVStore(dir string) *KVStore {
	return &KVStore{dir: dir}
}

// KeyToPath converts a key to its file name under the store directory.
// Example: excel-bookmarks → excel-bookmarks.json, a/b → a%2Fb.json
func KeyToPath(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", formulary.Errorf(formulary.EINVALID, "key required")
	}
	if key == "." || key == ".." {
		return "", formulary.Errorf(formulary.EINVALID, "invalid key %q", key)
	}
	return url.PathEscape(key) + ".json", nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := KeyToPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, formulary.Errorf(formulary.ENOTFOUND, "key %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	name, err := KeyToPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	final := filepath.Join(s.dir, name)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	// Atomically replace the previous value
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *KVStore) Close() error {
	return nil
}
