package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/fsutil"
	"github.com/yaklabco/gotok/pkg/reporter"
	"github.com/yaklabco/gotok/pkg/runner"
)

// outputFilePermissions is the file mode for --output files.
const outputFilePermissions = 0o644

type tokenizeFlags struct {
	mode           string
	preset         string
	rulesFile      string
	closePolicy    string
	format         string
	maxDepth       int
	jobs           int
	strict         bool
	codeBlocks     bool
	extensions     []string
	ignore         []string
	include        []string
	output         string
	problemsOnly   bool
	noContext      bool
	noSummary      bool
	compact        bool
	perFile        bool
	summaryOrder   string
	followSymlinks bool
	maxStdinBytes  int64
}

func newTokenizeCommand() *cobra.Command {
	flags := &tokenizeFlags{}

	cmd := &cobra.Command{
		Use:     "tokenize [paths...|-]",
		Aliases: []string{"tok"},
		Short:   "Tokenize files or standard input",
		Long:    tokenizeLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, flags)
		},
	}

	addTokenizeFlags(cmd, flags)

	return cmd
}

const tokenizeLongDescription = `Tokenize files, directories or standard input.

By default every file under the current directory is tokenized, each with
the preset matching its detected language. Name a preset or a rule file to
use one rule set for every input. Use "-" to read standard input.

Examples:
  gotok tokenize main.c                   # Tokenize one file as a tree
  gotok tokenize --mode flat expr.txt     # Flat token list, longest match
  gotok tokenize --preset math -          # Tokenize stdin with the math preset
  gotok tokenize --rules my.yaml src/     # Use a custom rule set
  gotok tokenize --problems-only --strict # Fail on unknown or unterminated text
  gotok tokenize --format json -o out.json`

func runTokenize(cmd *cobra.Command, args []string, flags *tokenizeFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	order := reporter.SummaryOrder(flags.summaryOrder)
	if !order.IsValid() {
		return fmt.Errorf("%w: unknown summary order %q; valid orders: kinds, files", ErrUsage, flags.summaryOrder)
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliConfig(cmd, flags))
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		// GOTOK_FORMAT was validated by the loader.
		format = reporter.Format(cfg.Format)
	}

	logger.Debug("configuration loaded",
		logging.FieldMode, cfg.Mode,
		logging.FieldPreset, cfg.Preset,
		logging.FieldClose, cfg.Close,
		logging.FieldMaxDepth, cfg.MaxDepth,
		logging.FieldJobs, cfg.Jobs,
	)

	resolver, err := runner.NewResolver(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Stdin:          cmd.InOrStdin(),
		MaxStdinBytes:  flags.maxStdinBytes,
		Config:         cfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(resolver).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	color := colorMode(cmd)
	if flags.output != "" {
		out = &buf
		color = "never"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        color,
		ShowTokens:   !flags.problemsOnly,
		ShowContext:  !flags.noContext,
		ShowSummary:  !flags.noSummary,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		SummaryOrder: order,
		WorkingDir:   workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), outputFilePermissions); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug("wrote output", logging.FieldOutput, flags.output)
	}

	return resultError(result, cfg.Strict)
}

// cliConfig builds the flag layer of the configuration. Only flags the user
// set are copied so lower layers keep their values.
func cliConfig(cmd *cobra.Command, flags *tokenizeFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("mode") {
		cfg.Mode = config.Mode(flags.mode)
	}
	if changed("preset") {
		cfg.Preset = flags.preset
	}
	if changed("rules") {
		cfg.RulesFile = flags.rulesFile
	}
	if changed("close") {
		cfg.Close = flags.closePolicy
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	cfg.Strict = flags.strict
	cfg.CodeBlocks = flags.codeBlocks

	return cfg
}

func addTokenizeFlags(cmd *cobra.Command, flags *tokenizeFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.mode, "mode", "m", "tree", "output shape: tree or flat")
	f.StringVarP(&flags.preset, "preset", "p", config.PresetAuto, "built-in rule set, or auto to detect per file")
	f.StringVar(&flags.rulesFile, "rules", "", "path to a YAML rule set (overrides --preset)")
	f.StringVar(&flags.closePolicy, "close", "", "branch close policy: text or delimiter (default: rule set preference)")
	f.StringVarP(&flags.format, "format", "f", "text", "output format: "+formatList())
	f.IntVar(&flags.maxDepth, "max-depth", 0, "maximum branch nesting depth (0 = unlimited)")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.BoolVar(&flags.strict, "strict", false, "exit non-zero on unknown text or unterminated branches")
	f.BoolVar(&flags.codeBlocks, "code-blocks", false, "tokenize fenced code blocks of Markdown files")
	f.StringSliceVar(&flags.extensions, "ext", nil, "file extensions to tokenize when walking directories")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	f.StringSliceVar(&flags.include, "include", nil, "glob patterns to restrict discovered files to")
	f.StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	f.BoolVar(&flags.problemsOnly, "problems-only", false, "list only unknown text and unterminated branches")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source line context under problems")
	f.BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	f.BoolVar(&flags.compact, "compact", false, "use compact output (minified JSON)")
	f.BoolVar(&flags.perFile, "per-file", false, "output separate table for each file (table format)")
	f.StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderKinds),
		"order of tables in summary output: kinds, files")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	f.Int64Var(&flags.maxStdinBytes, "max-stdin-bytes", 0, "limit bytes read from stdin (0 = unlimited)")
}

func formatList() string {
	names := make([]string, 0, 4)
	for _, f := range reporter.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
