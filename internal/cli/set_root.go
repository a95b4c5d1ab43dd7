package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"path-chronicle/internal/config"
	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/rootpath"
)

// SetRootCommand handles the set-root command
type SetRootCommand struct {
	fs filesystem.FileSystem
}

// NewSetRootCommand creates a new set-root command
func NewSetRootCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &SetRootCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "set-root <path>",
		Short: "Set the project root directory",
		Long: `Store the absolute project root directory in the config file.

All manifest paths are stored relative to this root. Re-running set-root
overwrites the previous value.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	return cobraCmd
}

// Run executes the set-root command
func (c *SetRootCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromCmd(cmd)

	abs, err := rootpath.Absolutize(c.fs, args[0])
	if err != nil {
		return err
	}

	if !c.fs.Exists(abs) {
		logger.Warn("project root does not exist on disk yet", "path", abs)
	}

	cfg, cfgPath, err := loadConfigFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	cfg.ProjectRoot = abs
	if err := config.Save(c.fs, cfgPath, cfg); err != nil {
		return err
	}

	logger.Debug("config written", "path", cfgPath)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "project root set to %s\n", abs)

	return nil
}
