package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"path-chronicle/internal/codegen"
	"path-chronicle/internal/filesystem"
)

const (
	outFlag     = "out"
	packageFlag = "package"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	fs filesystem.FileSystem
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &GenerateCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the Go module of path constants from the manifest",
		Long: `Render the manifest as a Go source file with one constant per entry
and a GetPath lookup function, and overwrite the output file with it.

The constants carry the current absolute paths; regenerate after moving
the project root. An empty manifest produces a valid empty module.`,
		RunE: cmd.Run,
	}
	cobraCmd.Flags().String(outFlag, "", "Output file (default: <project root>/paths/paths.go)")
	cobraCmd.Flags().String(packageFlag, "paths", "Package name of the generated module")

	return cobraCmd
}

// Run executes the generate command
func (c *GenerateCommand) Run(cmd *cobra.Command, args []string) error {
	resolver, err := resolverFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	store, err := storeFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	records, err := store.List()
	if err != nil {
		return err
	}

	pkg, _ := cmd.Flags().GetString(packageFlag)
	outPath, _ := cmd.Flags().GetString(outFlag)
	if outPath == "" {
		outPath = filepath.Join(resolver.Root(), pkg, pkg+".go")
	}

	if err := codegen.New(c.fs).Write(records, resolver, pkg, outPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "generated %s with %d paths\n", outPath, len(records))

	return nil
}
