package rootpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"path-chronicle/internal/filesystem"
)

const root = "/workspace/project"

func newTestResolver(t *testing.T) (*Resolver, *filesystem.MockFileSystem) {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	resolver, err := NewResolver(fs, root)
	require.NoError(t, err)

	return resolver, fs
}

func TestNewResolverRequiresConfiguredRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := NewResolver(fs, "")
	require.ErrorIs(t, err, ErrRootNotConfigured)

	_, err = NewResolver(fs, "relative/root")
	require.ErrorIs(t, err, ErrRootNotConfigured)
}

func TestResolveRelativeToWorkingDirectory(t *testing.T) {
	resolver, _ := newTestResolver(t)

	abs, rel, err := resolver.Resolve("notes/todo.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "notes", "todo.txt"), abs)
	require.Equal(t, "notes/todo.txt", rel)
}

func TestResolveFromSubdirectory(t *testing.T) {
	resolver, fs := newTestResolver(t)
	fs.SetCurrentDir(filepath.Join(root, "notes"))

	abs, rel, err := resolver.Resolve("todo.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "notes", "todo.txt"), abs)
	require.Equal(t, "notes/todo.txt", rel)
}

func TestResolveAbsoluteInsideRoot(t *testing.T) {
	resolver, _ := newTestResolver(t)

	abs, rel, err := resolver.Resolve(filepath.Join(root, "assets", "logo.svg"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "assets", "logo.svg"), abs)
	require.Equal(t, "assets/logo.svg", rel)
}

func TestResolveRejectsOutsideRoot(t *testing.T) {
	resolver, fs := newTestResolver(t)

	_, _, err := resolver.Resolve("/elsewhere/file.txt")
	require.ErrorIs(t, err, ErrOutsideRoot)

	// Relative paths can escape the root too.
	fs.SetCurrentDir(root)
	_, _, err = resolver.Resolve("../escape.txt")
	require.ErrorIs(t, err, ErrOutsideRoot)
}

func TestResolveRootItself(t *testing.T) {
	resolver, _ := newTestResolver(t)

	abs, rel, err := resolver.Resolve(root)
	require.NoError(t, err)
	require.Equal(t, root, abs)
	require.Equal(t, ".", rel)
}

func TestAbsInvertsResolve(t *testing.T) {
	resolver, _ := newTestResolver(t)

	_, rel, err := resolver.Resolve("notes/todo.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "notes", "todo.txt"), resolver.Abs(rel))
}

func TestAbsolutize(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir(root)

	abs, err := Absolutize(fs, ".")
	require.NoError(t, err)
	require.Equal(t, root, abs)

	abs, err = Absolutize(fs, "/already/absolute")
	require.NoError(t, err)
	require.Equal(t, "/already/absolute", abs)
}
