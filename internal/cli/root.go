package cli

import (
	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "path-chronicle",
		Short: "Track project paths in a CSV manifest",
		Long: `A CLI tool that keeps a CSV manifest of project paths and regenerates
a Go module exposing each registered path as a named constant.

Paths are stored relative to a configured project root, so the manifest
stays portable across machines.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(configFlag, "", "Config file location (default: <user config dir>/path-chronicle/config.toml)")
	rootCmd.PersistentFlags().String(manifestDirFlag, "", "Directory containing the manifest file (default: project root)")
	rootCmd.PersistentFlags().String(manifestNameFlag, defaultManifestName, "Manifest file name")
	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewSetRootCommand(fs))
	rootCmd.AddCommand(NewMkdirCommand(fs))
	rootCmd.AddCommand(NewTouchCommand(fs))
	rootCmd.AddCommand(NewTrackCommand(fs))
	rootCmd.AddCommand(NewUntrackCommand(fs))
	rootCmd.AddCommand(NewRemoveCommand(fs))
	rootCmd.AddCommand(NewListCommand(fs))
	rootCmd.AddCommand(NewGenerateCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	return rootCmd.Execute()
}
