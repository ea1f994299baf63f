package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/studyous/internal/shared"
)

var _ Store = (*LocalStore)(nil)

// LocalStore is a [Store] backed by a directory on disk.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore creates a store rooted at cfg.Dir. A non-positive MaxUploadMB disables the size limit.
func NewLocalStore(cfg shared.StorageConfig) *LocalStore {
	return &LocalStore{dir: cfg.Dir, maxBytes: int64(cfg.MaxUploadMB) << 20}
}

// Dir returns the root directory of the store.
func (s *LocalStore) Dir() string { return s.dir }

// Path resolves key to a file path inside the store.
func (s *LocalStore) Path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: storage key %q", shared.ErrInvalidArgument, key)
	}
	return filepath.Join(s.dir, clean), nil
}

// Put writes r to key, failing with [shared.ErrInvalidFile] when the upload exceeds the size limit.
func (s *LocalStore) Put(key string, r io.Reader) (int64, error) {
	path, err := s.Path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create object: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = fmt.Errorf("%w: larger than %d MB", shared.ErrInvalidFile, s.maxBytes>>20)
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return n, nil
}

// Open returns the object stored at key.
func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes the object at key.
func (s *LocalStore) Delete(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
