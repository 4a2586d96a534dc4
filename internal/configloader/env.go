package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gotok/pkg/config"
)

// envVarPrefix is the prefix for all gotok environment variables.
const envVarPrefix = "GOTOK_"

// envVar binds one GOTOK_* variable to a config field.
type envVar struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, n)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// envVars lists the supported variables in the order they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"MODE", "mode", "Output shape: tree or flat",
		stringVar(func(c *config.Config, v string) { c.Mode = config.Mode(v) })},
	{"PRESET", "preset", "Built-in rule set name, or auto",
		stringVar(func(c *config.Config, v string) { c.Preset = v })},
	{"RULES_FILE", "rules_file", "Path to a YAML rule set",
		stringVar(func(c *config.Config, v string) { c.RulesFile = v })},
	{"CLOSE", "close", "Branch close policy: text or delimiter",
		stringVar(func(c *config.Config, v string) { c.Close = v })},
	{"FORMAT", "format", "Output format: text, table, json, or summary",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"MAX_DEPTH", "max_depth", "Maximum branch nesting depth (0 = unlimited)",
		intVar(func(c *config.Config, v int) { c.MaxDepth = v })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config, v int) { c.Jobs = v })},
	{"STRICT", "strict", "Fail on unknown text or unterminated branches: true or false",
		boolVar(func(c *config.Config, v bool) { c.Strict = v })},
	{"CODE_BLOCKS", "code_blocks", "Tokenize Markdown code blocks: true or false",
		boolVar(func(c *config.Config, v bool) { c.CodeBlocks = v })},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions",
		listVar(func(c *config.Config, v []string) { c.Extensions = v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
}

// LoadFromEnv applies GOTOK_* environment variables to cfg. Unset and
// empty variables are skipped.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the environment variable for a config field name,
// or "" if the field cannot be set from the environment.
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envVarPrefix + v.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, v := range envVars {
		vars[envVarPrefix+v.suffix] = v.help
	}
	return vars
}
