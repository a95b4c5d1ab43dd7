// Package scaffold performs the filesystem side effects behind the mkdir,
// touch, and remove commands: single-shot creation and guarded deletion.
package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"

	"path-chronicle/internal/filesystem"
)

var (
	ErrAlreadyExists     = errors.New("target already exists")
	ErrDirectoryNotEmpty = errors.New("directory is not empty")
)

// Kind discriminates between directory and file targets.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// Scaffold creates and deletes filesystem targets on behalf of the manifest.
type Scaffold struct {
	fs filesystem.FileSystem
}

// New creates a new Scaffold.
func New(fs filesystem.FileSystem) *Scaffold {
	return &Scaffold{fs: fs}
}

// Create makes the target at abs, creating missing parent directories first.
// An existing target fails with ErrAlreadyExists unless idempotent is set,
// in which case creation is a no-op.
func (s *Scaffold) Create(abs string, kind Kind, idempotent bool) error {
	if s.fs.Exists(abs) {
		if idempotent {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyExists, abs)
	}

	if err := s.fs.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories: %w", err)
	}

	switch kind {
	case KindDir:
		if err := s.fs.MkdirAll(abs, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	case KindFile:
		if err := s.fs.WriteFile(abs, nil, 0644); err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
	}

	return nil
}

// Delete removes the target at abs. A missing target is treated as already
// removed. Deleting a non-empty directory requires force; without it the
// call fails with ErrDirectoryNotEmpty and nothing is touched.
func (s *Scaffold) Delete(abs string, force bool) error {
	if !s.fs.Exists(abs) {
		return nil
	}

	info, err := s.fs.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	if !info.IsDir() {
		if err := s.fs.Remove(abs); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}

	entries, err := s.fs.ReadDir(abs)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", abs, err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("%w: %s (use --force)", ErrDirectoryNotEmpty, abs)
	}

	if err := s.fs.RemoveAll(abs); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}

	return nil
}
