package pending

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists reports as JSON files for CLI use, so a check in one
// invocation can feed a fill in the next.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir, ttl: DefaultTTL}, nil
}

// Get retrieves the report for a target key.
func (s *FileStore) Get(ctx context.Context, key string) (*Report, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		// Corrupt state file - treat as absent
		_ = os.Remove(s.path(key))
		return nil, ErrNotFound
	}
	if time.Since(r.CreatedAt) > s.ttl {
		_ = os.Remove(s.path(key))
		return nil, ErrNotFound
	}
	return &r, nil
}

// Set stores a report under its target key.
func (s *FileStore) Set(ctx context.Context, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(r.Key()), data, 0o644)
}

// Clear removes the report for a target key.
func (s *FileStore) Clear(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Dir returns the directory reports are stored in.
func (s *FileStore) Dir() string { return s.dir }

// path converts a target key to a file path. Keys embed scene paths, so
// they are hashed rather than used as filenames directly.
func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
