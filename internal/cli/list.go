package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"path-chronicle/internal/filesystem"
)

// ListCommand handles the list command
type ListCommand struct {
	fs filesystem.FileSystem
}

// NewListCommand creates a new list command
func NewListCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ListCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "List all manifest entries",
		Example: `  # Show entries as a table
  path-chronicle list

  # Output JSON for scripting
  path-chronicle list --format json`,
		RunE: cmd.Run,
	}
	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	store, err := storeFromCmd(c.fs, cmd)
	if err != nil {
		return err
	}

	records, err := store.List()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	case "text":
	default:
		return fmt.Errorf("unknown format %q: must be text or json", format)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no paths registered")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PATH", "DESCRIPTION")
	for _, r := range records {
		t.Row(strconv.Itoa(r.ID), r.Name, r.Path, r.Description)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)

	return nil
}
