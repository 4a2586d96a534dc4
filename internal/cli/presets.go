package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/presets"
)

// presetInfo represents a preset in JSON output.
type presetInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Close       string   `json:"close"`
	Rules       int      `json:"rules"`
	Fallback    bool     `json:"fallback,omitempty"`
}

func newPresetsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in rule sets",
		Long: `List the built-in rule sets with the languages they are chosen for.
The fallback preset is used when no language matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sets := presets.All()
			infos := make([]presetInfo, 0, len(sets))
			for _, set := range sets {
				infos = append(infos, presetInfo{
					Name:        set.Name,
					Description: set.Description,
					Languages:   set.Languages,
					Close:       closeLabel(set.Close),
					Rules:       len(set.Rules),
					Fallback:    set.Name == presets.Fallback,
				})
			}

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding presets: %w", err)
				}
				return nil
			case "text":
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, format)
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			for _, info := range infos {
				name := info.Name
				if info.Fallback {
					name += " (fallback)"
				}
				logger.Info(name,
					logging.FieldDescription, info.Description,
					logging.FieldLanguages, strings.Join(info.Languages, ","),
					logging.FieldClose, info.Close,
					logging.FieldRules, info.Rules,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
