package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"path-chronicle/internal/config"
	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/manifest"
	"path-chronicle/internal/models"
	"path-chronicle/internal/rootpath"
)

const (
	configFlag       = "config"
	manifestDirFlag  = "manifest-dir"
	manifestNameFlag = "manifest-name"
	verboseFlag      = "verbose"

	defaultManifestName = "paths.csv"
)

func loggerFromCmd(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: false})
	if verbose, _ := cmd.Flags().GetBool(verboseFlag); verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func configPathFromCmd(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString(configFlag); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func loadConfigFromCmd(fs filesystem.FileSystem, cmd *cobra.Command) (*config.Config, string, error) {
	path, err := configPathFromCmd(cmd)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

func resolverFromCmd(fs filesystem.FileSystem, cmd *cobra.Command) (*rootpath.Resolver, error) {
	cfg, _, err := loadConfigFromCmd(fs, cmd)
	if err != nil {
		return nil, err
	}

	return rootpath.NewResolver(fs, cfg.ProjectRoot)
}

// storeFromCmd builds the manifest store from the persistent flags. The
// manifest lives in the project root unless --manifest-dir overrides it.
func storeFromCmd(fs filesystem.FileSystem, cmd *cobra.Command) (*manifest.Store, error) {
	dir, _ := cmd.Flags().GetString(manifestDirFlag)
	name, _ := cmd.Flags().GetString(manifestNameFlag)
	if name == "" {
		name = defaultManifestName
	}

	if dir == "" {
		resolver, err := resolverFromCmd(fs, cmd)
		if err != nil {
			return nil, err
		}
		dir = resolver.Root()
	}

	return manifest.NewStore(fs, filepath.Join(dir, name)), nil
}

func addCriterionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("id", 0, "ID of the manifest entry")
	cmd.Flags().String("name", "", "Name of the manifest entry")
	cmd.Flags().String("path", "", "Path of the manifest entry")
}

// criterionFromCmd reads the --id/--name/--path flags, requiring exactly one.
func criterionFromCmd(cmd *cobra.Command) (manifest.Criterion, error) {
	id, _ := cmd.Flags().GetInt("id")
	name, _ := cmd.Flags().GetString("name")
	path, _ := cmd.Flags().GetString("path")

	set := 0
	if id != 0 {
		set++
	}
	if name != "" {
		set++
	}
	if path != "" {
		set++
	}
	if set != 1 {
		return manifest.Criterion{}, fmt.Errorf("exactly one of --id, --name, or --path must be provided")
	}

	return manifest.Criterion{ID: id, Name: name, Path: path}, nil
}

// normalizeCriterionPath rewrites a path criterion into the root-relative
// form stored in the manifest, so callers can pass working-directory paths.
func normalizeCriterionPath(criterion manifest.Criterion, resolver *rootpath.Resolver) manifest.Criterion {
	if criterion.Path == "" || resolver == nil {
		return criterion
	}

	if _, rel, err := resolver.Resolve(criterion.Path); err == nil {
		criterion.Path = rel
	}

	return criterion
}

// removeFromStore deletes the entry matching criterion. The criterion is
// matched verbatim against stored values first; only when nothing matches is
// a path criterion re-interpreted relative to the working directory, so the
// exact stored path always wins regardless of where the command runs.
func removeFromStore(store *manifest.Store, criterion manifest.Criterion, resolver *rootpath.Resolver, preCommit func(models.PathRecord) error) (*models.PathRecord, error) {
	record, err := store.Remove(criterion, preCommit)
	if err == nil || !errors.Is(err, manifest.ErrNotFound) {
		return record, err
	}

	normalized := normalizeCriterionPath(criterion, resolver)
	if normalized == criterion {
		return nil, err
	}

	return store.Remove(normalized, preCommit)
}
