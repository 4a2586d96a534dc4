package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotok/internal/configloader"
	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/fsutil"
	"github.com/yaklabco/gotok/pkg/presets"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	preset string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gotok configuration file",
		Long: `Create a new .gotok.yml configuration file in the current directory
with sensible defaults.

Examples:
  gotok init                      Create minimal .gotok.yml
  gotok init --full               Include a documented inline rule set
  gotok init --preset lisp        Pin the lisp preset
  gotok init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "include a documented inline rule set")
	cmd.Flags().StringVarP(&flags.preset, "preset", "p", config.PresetAuto, "preset to write into the file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.preset != config.PresetAuto && !slices.Contains(presets.Names(), flags.preset) {
		return fmt.Errorf("%w: unknown preset %q", ErrUsage, flags.preset)
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Preset: flags.preset,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	changed, err := fsutil.WriteAtomicIfChanged(cmd.Context(), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	if !changed {
		logger.Info("configuration file is already up to date", logging.FieldPath, flags.output)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gotok presets' to see the built-in rule sets")

	return nil
}
