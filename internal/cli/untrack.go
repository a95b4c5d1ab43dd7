package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
)

// UntrackCommand handles the untrack command
type UntrackCommand struct {
	fs filesystem.FileSystem
}

// NewUntrackCommand creates a new untrack command
func NewUntrackCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &UntrackCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "untrack (--id N | --name NAME | --path PATH)",
		Short: "Remove an entry from the manifest without touching the filesystem",
		RunE:  cmd.Run,
	}
	addCriterionFlags(cobraCmd)

	return cobraCmd
}

// Run executes the untrack command
func (c *UntrackCommand) Run(cmd *cobra.Command, args []string) error {
	criterion, err := criterionFromCmd(cmd)
	if err != nil {
		return err
	}

	store, err := storeFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	// Best effort: a path criterion may also be given relative to the
	// working directory instead of the project root.
	resolver, _ := resolverFromCmd(c.fs, cmd)

	record, err := removeFromStore(store, criterion, resolver, nil)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s (%s) from manifest\n", record.Name, record.Path)

	return nil
}
