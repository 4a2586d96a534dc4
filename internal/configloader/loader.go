// Package configloader resolves the effective gotok configuration from
// config files, GOTOK_* environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/config"
)

// LoadOptions selects the sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search and relative rule
	// paths given by flags or environment. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It is layered above the
	// discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values. Only set fields override.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration plus where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // config files applied, lowest precedence first
	Warnings   []string
}

type layer struct {
	name string
	path string
	skip bool
}

// Load merges, lowest precedence first: defaults, the system file, the
// user file, the project file, the --config file, the environment and
// finally the flags. The merged result is validated; the first error is
// returned as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()
	for _, l := range []layer{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	} {
		if l.skip || l.path == "" {
			continue
		}
		fileCfg, err := readConfigFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
		logger.Debug("loaded config", logging.FieldConfig, l.path, "layer", l.name)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// File layers already made their rules_file absolute.
	if cfg.RulesFile != "" && !filepath.IsAbs(cfg.RulesFile) {
		cfg.RulesFile = filepath.Join(workDir, cfg.RulesFile)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	result.Config = cfg
	return result, nil
}

// readConfigFile decodes path, resolving a relative rules_file against
// the directory holding path.
func readConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.RulesFile == "" || filepath.IsAbs(cfg.RulesFile) {
		return cfg, nil
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(path), cfg.RulesFile))
	if err != nil {
		return nil, fmt.Errorf("resolve rules_file: %w", err)
	}
	cfg.RulesFile = abs
	return cfg, nil
}
