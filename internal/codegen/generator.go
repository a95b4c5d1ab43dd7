// Package codegen renders the manifest as a Go source module exposing one
// constant per record plus a name lookup function. Output is a pure function
// of the manifest order, so regeneration is byte-identical.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"text/template"

	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/manifest"
	"path-chronicle/internal/models"
	"path-chronicle/internal/rootpath"
)

const moduleTemplate = `// Code generated by path-chronicle. DO NOT EDIT.

// Package {{.Package}} exposes the registered project paths as constants.
// Regenerate it with "path-chronicle generate" after changing the manifest.
package {{.Package}}
{{if .Entries}}
const (
{{- range .Entries}}
	// {{.Name}} is the registered path {{.Rel}}.
	{{.Name}} = {{printf "%q" .Abs}}
{{- end}}
)

var pathsByName = map[string]string{
{{- range .Entries}}
	{{printf "%q" .Name}}: {{.Name}},
{{- end}}
}
{{else}}
var pathsByName = map[string]string{}
{{end}}
// GetPath returns the absolute path registered under name. Unknown names
// yield the empty string; the lookup never fails.
func GetPath(name string) string {
	return pathsByName[name]
}
`

var parsedTemplate = template.Must(template.New("module").Parse(moduleTemplate))

type templateData struct {
	Package string
	Entries []moduleEntry
}

type moduleEntry struct {
	Name string
	Rel  string
	Abs  string
}

// Generator renders and writes the path module.
type Generator struct {
	fs filesystem.FileSystem
}

// New creates a new Generator.
func New(fs filesystem.FileSystem) *Generator {
	return &Generator{fs: fs}
}

// Render produces the module source for records in manifest order. Paths are
// made absolute through resolver at generation time; the generated module
// has no runtime dependency on the configuration state.
//
// Name uniqueness is enforced at add time, but a hand-edited manifest could
// violate it, so it is re-checked here and fails fast.
func (g *Generator) Render(records []models.PathRecord, resolver *rootpath.Resolver, pkg string) (string, error) {
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	seen := make(map[string]struct{}, len(records))
	entries := make([]moduleEntry, 0, len(records))
	for _, r := range records {
		if !token.IsIdentifier(r.Name) {
			return "", fmt.Errorf("%w: name %q is not a valid identifier", manifest.ErrManifestCorrupt, r.Name)
		}
		if manifest.IsReservedName(r.Name) {
			return "", fmt.Errorf("%w: name %q collides with the generated lookup API", manifest.ErrManifestCorrupt, r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return "", fmt.Errorf("%w: duplicate name %q", manifest.ErrManifestCorrupt, r.Name)
		}
		seen[r.Name] = struct{}{}

		entries = append(entries, moduleEntry{
			Name: r.Name,
			Rel:  r.Path,
			Abs:  resolver.Abs(r.Path),
		})
	}

	var buf bytes.Buffer
	if err := parsedTemplate.Execute(&buf, templateData{Package: pkg, Entries: entries}); err != nil {
		return "", fmt.Errorf("failed to render module: %w", err)
	}

	return buf.String(), nil
}

// Write renders the module and overwrites the file at outPath, creating
// parent directories as needed. Hand edits to the file are lost.
func (g *Generator) Write(records []models.PathRecord, resolver *rootpath.Resolver, pkg, outPath string) error {
	source, err := g.Render(records, resolver, pkg)
	if err != nil {
		return err
	}

	if err := g.fs.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create module directory: %w", err)
	}

	if err := g.fs.WriteFile(outPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("failed to write module: %w", err)
	}

	return nil
}
