package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/models"
	"path-chronicle/internal/scaffold"
)

const forceFlag = "force"

// RemoveCommand handles the remove command
type RemoveCommand struct {
	fs filesystem.FileSystem
}

// NewRemoveCommand creates a new remove command
func NewRemoveCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &RemoveCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "remove (--id N | --name NAME | --path PATH)",
		Short: "Delete a registered path from disk and from the manifest",
		Long: `Delete the matched path from the filesystem and its entry from the
manifest. The two are removed together or not at all: if the filesystem
deletion is refused, the manifest keeps the entry.

Deleting a non-empty directory requires --force.`,
		RunE: cmd.Run,
	}
	addCriterionFlags(cobraCmd)
	cobraCmd.Flags().Bool(forceFlag, false, "Delete non-empty directories")

	return cobraCmd
}

// Run executes the remove command
func (c *RemoveCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromCmd(cmd)

	criterion, err := criterionFromCmd(cmd)
	if err != nil {
		return err
	}

	resolver, err := resolverFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	store, err := storeFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool(forceFlag)
	deleter := scaffold.New(c.fs)

	record, err := removeFromStore(store, criterion, resolver, func(record models.PathRecord) error {
		abs := resolver.Abs(record.Path)
		logger.Debug("deleting target", "path", abs)
		return deleter.Delete(abs, force)
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s (%s)\n", record.Name, record.Path)

	return nil
}
