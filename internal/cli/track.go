package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
)

// TrackCommand handles the track command
type TrackCommand struct {
	fs filesystem.FileSystem
}

// NewTrackCommand creates a new track command
func NewTrackCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &TrackCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "track <path>",
		Short: "Register an existing path in the manifest",
		Long: `Register a path in the manifest without touching the filesystem.

The path does not have to exist on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}
	cobraCmd.Flags().String(descriptionFlag, "", "Description stored with the manifest entry")

	return cobraCmd
}

// Run executes the track command
func (c *TrackCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromCmd(cmd)

	resolver, err := resolverFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	abs, rel, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	if !c.fs.Exists(abs) {
		logger.Debug("registering path that does not exist on disk", "path", abs)
	}

	store, err := storeFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	description, _ := cmd.Flags().GetString(descriptionFlag)
	record, err := store.Add(rel, description)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s as %s (id %d)\n", rel, record.Name, record.ID)

	return nil
}
