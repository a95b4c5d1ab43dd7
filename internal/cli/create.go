package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/scaffold"
)

const (
	descriptionFlag = "description"
	noTrackFlag     = "no-track"
	idempotentFlag  = "idempotent"
)

// createCommand backs both mkdir and touch: create a target on disk and
// register it in the manifest unless --no-track is given.
type createCommand struct {
	fs   filesystem.FileSystem
	kind scaffold.Kind
}

// NewMkdirCommand creates a new mkdir command
func NewMkdirCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &createCommand{fs: fs, kind: scaffold.KindDir}

	cobraCmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory and register it in the manifest",
		Long: `Create a directory (including missing parents) and register its
root-relative path in the manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}
	addCreateFlags(cobraCmd)

	return cobraCmd
}

// NewTouchCommand creates a new touch command
func NewTouchCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &createCommand{fs: fs, kind: scaffold.KindFile}

	cobraCmd := &cobra.Command{
		Use:   "touch <path>",
		Short: "Create an empty file and register it in the manifest",
		Long: `Create an empty file (including missing parent directories) and
register its root-relative path in the manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}
	addCreateFlags(cobraCmd)

	return cobraCmd
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().String(descriptionFlag, "", "Description stored with the manifest entry")
	cmd.Flags().Bool(noTrackFlag, false, "Create the target without registering it")
	cmd.Flags().Bool(idempotentFlag, false, "Succeed without error if the target already exists")
}

// Run executes the mkdir or touch command
func (c *createCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromCmd(cmd)

	resolver, err := resolverFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	abs, rel, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	idempotent, _ := cmd.Flags().GetBool(idempotentFlag)
	if err := scaffold.New(c.fs).Create(abs, c.kind, idempotent); err != nil {
		return err
	}
	logger.Debug("created target", "path", abs)

	if noTrack, _ := cmd.Flags().GetBool(noTrackFlag); noTrack {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", abs)
		return nil
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

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (id %d, name %s)\n", abs, record.ID, record.Name)

	return nil
}
