package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/manifest"
	"path-chronicle/internal/models"
	"path-chronicle/internal/rootpath"
	"path-chronicle/internal/scaffold"
)

const (
	testRoot       = "/workspace/project"
	testConfigPath = "/workspace/.config/path-chronicle/config.toml"
)

func runCommand(t *testing.T, fs filesystem.FileSystem, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCommand(fs)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--config", testConfigPath))

	err := rootCmd.Execute()
	return buf.String(), err
}

func newProjectFS(t *testing.T) *filesystem.MockFileSystem {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testRoot)
	fs.SetCurrentDir(testRoot)

	_, err := runCommand(t, fs, "set-root", ".")
	require.NoError(t, err)

	return fs
}

func listRecords(t *testing.T, fs filesystem.FileSystem) []models.PathRecord {
	t.Helper()

	out, err := runCommand(t, fs, "list", "--format", "json")
	require.NoError(t, err)

	var records []models.PathRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	return records
}

func TestSetRootWritesConfig(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testRoot)
	fs.SetCurrentDir(testRoot)

	out, err := runCommand(t, fs, "set-root", ".")
	require.NoError(t, err)
	require.Contains(t, out, "project root set to "+testRoot)
	require.True(t, fs.Exists(testConfigPath))

	// Re-setting overwrites the previous value.
	out, err = runCommand(t, fs, "set-root", "/workspace/other")
	require.NoError(t, err)
	require.Contains(t, out, "project root set to /workspace/other")
}

func TestCommandsRequireConfiguredRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := runCommand(t, fs, "mkdir", "assets")
	require.ErrorIs(t, err, rootpath.ErrRootNotConfigured)

	_, err = runCommand(t, fs, "generate")
	require.ErrorIs(t, err, rootpath.ErrRootNotConfigured)
}

func TestMkdirCreatesAndRegisters(t *testing.T) {
	fs := newProjectFS(t)

	out, err := runCommand(t, fs, "mkdir", "assets", "--description", "static assets")
	require.NoError(t, err)
	require.Contains(t, out, "created "+testRoot+"/assets")
	require.Contains(t, out, "name assets")

	info, err := fs.Stat(testRoot + "/assets")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	records := listRecords(t, fs)
	require.Len(t, records, 1)
	require.Equal(t, models.PathRecord{ID: 1, Name: "assets", Path: "assets", Description: "static assets"}, records[0])
}

func TestMkdirNoTrackSkipsManifest(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "mkdir", "scratch", "--no-track")
	require.NoError(t, err)

	require.True(t, fs.Exists(testRoot+"/scratch"))
	require.Empty(t, listRecords(t, fs))
}

func TestTouchCreatesFileAndDerivesName(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "touch", "notes/todo.txt")
	require.NoError(t, err)

	info, err := fs.Stat(testRoot + "/notes/todo.txt")
	require.NoError(t, err)
	require.False(t, info.IsDir())

	records := listRecords(t, fs)
	require.Len(t, records, 1)
	require.Equal(t, "todo_txt", records[0].Name)
	require.Equal(t, "notes/todo.txt", records[0].Path)
}

func TestTouchExistingTargetFails(t *testing.T) {
	fs := newProjectFS(t)
	fs.AddFile(testRoot+"/notes/todo.txt", []byte("content"))

	_, err := runCommand(t, fs, "touch", "notes/todo.txt")
	require.ErrorIs(t, err, scaffold.ErrAlreadyExists)

	_, err = runCommand(t, fs, "touch", "notes/todo.txt", "--idempotent")
	require.NoError(t, err)
}

func TestTrackAndUntrack(t *testing.T) {
	fs := newProjectFS(t)

	out, err := runCommand(t, fs, "track", "docs", "--description", "documentation")
	require.NoError(t, err)
	require.Contains(t, out, "registered docs as docs (id 1)")

	// track never touches the filesystem
	require.False(t, fs.Exists(testRoot+"/docs"))

	_, err = runCommand(t, fs, "untrack", "--name", "docs")
	require.NoError(t, err)
	require.Empty(t, listRecords(t, fs))
}

func TestUntrackByPathFromSubdirectory(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "track", "assets")
	require.NoError(t, err)
	_, err = runCommand(t, fs, "mkdir", "sub", "--no-track")
	require.NoError(t, err)
	fs.SetCurrentDir(testRoot + "/sub")

	// The stored root-relative path matches regardless of the working
	// directory.
	out, err := runCommand(t, fs, "untrack", "--path", "assets")
	require.NoError(t, err)
	require.Contains(t, out, "removed assets (assets) from manifest")
	require.Empty(t, listRecords(t, fs))
}

func TestUntrackByWorkingDirectoryRelativePath(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "track", "sub/data")
	require.NoError(t, err)
	fs.AddDir(testRoot + "/sub")
	fs.SetCurrentDir(testRoot + "/sub")

	// A path that matches nothing verbatim is resolved against the
	// working directory instead.
	out, err := runCommand(t, fs, "untrack", "--path", "data")
	require.NoError(t, err)
	require.Contains(t, out, "removed data (sub/data) from manifest")
	require.Empty(t, listRecords(t, fs))
}

func TestUntrackRequiresExactlyOneCriterion(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "untrack")
	require.Error(t, err)

	_, err = runCommand(t, fs, "untrack", "--id", "1", "--name", "docs")
	require.Error(t, err)
}

func TestRemoveNonEmptyDirNeedsForce(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "mkdir", "assets")
	require.NoError(t, err)
	_, err = runCommand(t, fs, "touch", "assets/logo.svg")
	require.NoError(t, err)

	_, err = runCommand(t, fs, "remove", "--path", "assets")
	require.ErrorIs(t, err, scaffold.ErrDirectoryNotEmpty)

	// Neither the filesystem nor the manifest changed.
	require.True(t, fs.Exists(testRoot+"/assets/logo.svg"))
	require.Len(t, listRecords(t, fs), 2)

	_, err = runCommand(t, fs, "remove", "--path", "assets", "--force")
	require.NoError(t, err)
	require.False(t, fs.Exists(testRoot+"/assets"))

	records := listRecords(t, fs)
	require.Len(t, records, 1)
	require.Equal(t, "logo_svg", records[0].Name)
}

func TestRemoveByIDDeletesFileAndEntry(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "touch", "notes/todo.txt")
	require.NoError(t, err)

	out, err := runCommand(t, fs, "remove", "--id", "1")
	require.NoError(t, err)
	require.Contains(t, out, "removed todo_txt (notes/todo.txt)")
	require.False(t, fs.Exists(testRoot+"/notes/todo.txt"))
	require.Empty(t, listRecords(t, fs))
}

func TestRemoveUnknownEntry(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "remove", "--id", "7")
	require.ErrorIs(t, err, manifest.ErrNotFound)
}

func TestListFormats(t *testing.T) {
	fs := newProjectFS(t)

	out, err := runCommand(t, fs, "list")
	require.NoError(t, err)
	require.Contains(t, out, "no paths registered")

	_, err = runCommand(t, fs, "mkdir", "assets", "--description", "static assets")
	require.NoError(t, err)

	out, err = runCommand(t, fs, "list")
	require.NoError(t, err)
	require.Contains(t, out, "assets")
	require.Contains(t, out, "static assets")

	records := listRecords(t, fs)
	require.Len(t, records, 1)
}

func TestListRejectsUnknownFormat(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "list", "--format", "yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown format "yaml"`)
	require.Contains(t, err.Error(), "text or json")
}

func TestListHonorsManifestOverride(t *testing.T) {
	fs := newProjectFS(t)
	fs.AddDir("/workspace/elsewhere")

	// An explicit manifest location works without consulting the root.
	out, err := runCommand(t, fs, "list", "--manifest-dir", "/workspace/elsewhere", "--manifest-name", "custom.csv")
	require.NoError(t, err)
	require.Contains(t, out, "no paths registered")
}

func TestGenerateWritesModule(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "mkdir", "assets")
	require.NoError(t, err)

	out, err := runCommand(t, fs, "generate")
	require.NoError(t, err)
	require.Contains(t, out, "generated "+testRoot+"/paths/paths.go with 1 paths")

	data, err := fs.ReadFile(testRoot + "/paths/paths.go")
	require.NoError(t, err)
	require.Contains(t, string(data), `assets = "`+testRoot+`/assets"`)

	// Regeneration is byte-identical.
	_, err = runCommand(t, fs, "generate")
	require.NoError(t, err)

	again, err := fs.ReadFile(testRoot + "/paths/paths.go")
	require.NoError(t, err)
	require.Equal(t, string(data), string(again))
}

func TestGenerateEmptyManifest(t *testing.T) {
	fs := newProjectFS(t)

	_, err := runCommand(t, fs, "generate", "--out", testRoot+"/gen/paths.go", "--package", "gen")
	require.NoError(t, err)

	data, err := fs.ReadFile(testRoot + "/gen/paths.go")
	require.NoError(t, err)
	require.Contains(t, string(data), "package gen")
	require.Contains(t, string(data), "func GetPath(name string) string {")
}
