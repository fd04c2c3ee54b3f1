// Package blob implements the document file store: a directory of
// uploaded files addressed by relative path.
package blob

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirName is the blob store directory created under the data dir.
const DirName = "documents"

// ErrPathOutsideRoot is returned when a relative path escapes the store
// root after cleaning.
var ErrPathOutsideRoot = errors.New("path escapes blob store root")

// Store is a directory of document files. Paths given to Store methods
// are relative to the root and use forward slashes.
type Store struct {
	root string
}

// NewStore returns a Store rooted at dataDir/documents. The directory is
// created on first save.
func NewStore(dataDir string) *Store {
	return &Store{root: filepath.Join(dataDir, DirName)}
}

// Root returns the absolute store root directory.
func (s *Store) Root() string {
	return s.root
}

// resolve converts a relative path into an absolute path under the root,
// rejecting traversal outside it.
func (s *Store) resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", ErrPathOutsideRoot
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrPathOutsideRoot
	}
	return filepath.Join(s.root, clean), nil
}

// Save writes the reader's contents to relPath, creating parent
// directories as needed. An existing file is overwritten.
func (s *Store) Save(relPath string, r io.Reader) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating parent dirs for %s: %w", relPath, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("creating %s: %w", relPath, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", relPath, err)
	}
	return nil
}

// Open opens the file at relPath for reading. The caller closes it.
func (s *Store) Open(relPath string) (*os.File, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes the file at relPath. Deleting a missing file is not an
// error.
func (s *Store) Delete(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", relPath, err)
	}
	return nil
}

// Walk calls fn for every regular file in the store with its
// slash-separated path relative to the root and its absolute path.
// A missing root directory walks zero files.
func (s *Store) Walk(fn func(relPath, fullPath string) error) error {
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), path)
	})
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
