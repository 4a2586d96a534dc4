package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/presets"
)

type rulesFlags struct {
	rulesFile string
	format    string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Match string `json:"match"`
}

// ruleSetInfo represents a rule set in JSON output.
type ruleSetInfo struct {
	Name    string     `json:"name"`
	Close   string     `json:"close,omitempty"`
	Entries int        `json:"entries"`
	Rules   []ruleInfo `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [preset]",
		Short: "List the rules of a rule set",
		Long: `List the rules of a preset, a rule file, or the rule set selected by the
configuration, in the order they are tried.

When the configuration selects "auto", the fallback preset is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := selectRuleSet(cmd, args, flags)
			if err != nil {
				return err
			}

			table, err := set.Compile()
			if err != nil {
				return fmt.Errorf("%w: rule set %q: %w", ErrConfig, set.Name, err)
			}

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), set, table.Len())
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, flags.format)
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			logger.Info(set.Name,
				logging.FieldRules, len(set.Rules),
				"entries", table.Len(),
				logging.FieldClose, closeLabel(set.Close),
			)
			for i, spec := range set.Rules {
				logger.Info(fmt.Sprintf("%2d %s", i+1, spec.Type()),
					logging.FieldKind, spec.Kind,
					logging.FieldMatch, spec.Describe(),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "path to a YAML rule set")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// selectRuleSet picks the rule set to list: a named preset, a rule file,
// then whatever the configuration selects.
func selectRuleSet(cmd *cobra.Command, args []string, flags *rulesFlags) (*config.RuleSet, error) {
	if len(args) == 1 {
		set, err := presets.Get(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return set, nil
	}
	if flags.rulesFile != "" {
		set, err := config.LoadRuleSet(flags.rulesFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return set, nil
	}

	workDir, err := workingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd, workDir, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Rules != nil:
		return cfg.Rules, nil
	case cfg.RulesFile != "":
		set, err := config.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return set, nil
	}

	name := cfg.Preset
	if name == "" || name == config.PresetAuto {
		name = presets.Fallback
	}
	set, err := presets.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return set, nil
}

func closeLabel(policy string) string {
	if policy == "" {
		return config.CloseText
	}
	return policy
}

// outputRulesJSON writes a rule set as JSON.
func outputRulesJSON(w io.Writer, set *config.RuleSet, entries int) error {
	info := ruleSetInfo{
		Name:    set.Name,
		Close:   set.Close,
		Entries: entries,
		Rules:   make([]ruleInfo, 0, len(set.Rules)),
	}
	for i, spec := range set.Rules {
		info.Rules = append(info.Rules, ruleInfo{
			Index: i + 1,
			Kind:  spec.Kind,
			Type:  spec.Type(),
			Match: spec.Describe(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
