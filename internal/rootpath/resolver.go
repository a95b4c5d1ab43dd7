// Package rootpath resolves caller-supplied paths against the configured
// project root, keeping the manifest root-relative and portable.
package rootpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"path-chronicle/internal/filesystem"
)

var (
	ErrRootNotConfigured = errors.New("project root not configured")
	ErrOutsideRoot       = errors.New("path resolved to outside the project root")
)

// Resolver converts paths between the caller's view (relative to the working
// directory, or absolute) and the manifest's view (relative to the project
// root, forward-slash separated).
type Resolver struct {
	fs   filesystem.FileSystem
	root string
}

// NewResolver creates a Resolver for the given project root. The root must
// have been configured beforehand via the set-root operation.
func NewResolver(fs filesystem.FileSystem, root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: run set-root first", ErrRootNotConfigured)
	}
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("%w: configured root %q is not absolute", ErrRootNotConfigured, root)
	}

	return &Resolver{fs: fs, root: filepath.Clean(root)}, nil
}

// Root returns the absolute project root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve interprets path relative to the current working directory (absolute
// paths are taken as-is) and returns its absolute form together with the
// root-relative form stored in the manifest.
func (r *Resolver) Resolve(path string) (abs string, rel string, err error) {
	abs = path
	if !filepath.IsAbs(abs) {
		wd, err := r.fs.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		abs = filepath.Join(wd, abs)
	}
	abs = filepath.Clean(abs)

	relative, err := filepath.Rel(r.root, abs)
	if err != nil || escapesRoot(relative) {
		return "", "", fmt.Errorf("%w: %s (root %s)", ErrOutsideRoot, abs, r.root)
	}

	return abs, filepath.ToSlash(relative), nil
}

// Abs maps a stored root-relative path back to its absolute form.
func (r *Resolver) Abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// Absolutize resolves path against the working directory without requiring a
// configured root. Used by set-root itself.
func Absolutize(fs filesystem.FileSystem, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	wd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}

	return filepath.Join(wd, path), nil
}

func escapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
