package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/presets"
	"github.com/yaklabco/gotok/pkg/tokenizer"
)

// ValidationError is one finding about one configuration field.
type ValidationError struct {
	Field    string // e.g. "ignore[2]"
	Value    any
	Message  string
	FilePath string // config file the value came from, if known
}

func (e *ValidationError) Error() string {
	prefix := ""
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			prefix += part + ": "
		}
	}
	return prefix + e.Message
}

// ValidationResult collects the findings of Validate. Errors stop a load,
// warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages renders every finding, errors first, each prefixed with its
// severity.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

func (r *ValidationResult) add(list *[]ValidationError, field string, value any, format string, args ...any) {
	*list = append(*list, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.add(&r.Errors, field, value, format, args...)
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.add(&r.Warnings, field, value, format, args...)
}

// checks run in order; findings appear in the order fields are checked.
//
//nolint:gochecknoglobals // Read-only check list.
var checks = []func(*config.Config, *ValidationResult){
	checkScalars,
	checkRuleSource,
	checkExtensions,
	checkIgnore,
}

// Validate checks cfg. A nil cfg is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	for _, check := range checks {
		check(cfg, result)
	}
	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}

// IsValidFormat reports whether f names an output format.
func IsValidFormat(f config.OutputFormat) bool {
	switch f {
	case config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary:
		return true
	}
	return false
}

func checkScalars(cfg *config.Config, r *ValidationResult) {
	if cfg.Mode != "" && !cfg.Mode.IsValid() {
		r.fail("mode", cfg.Mode, "invalid mode %q; must be one of: tree, flat", cfg.Mode)
	}
	if _, err := tokenizer.ParseClosePolicy(cfg.Close); err != nil {
		r.fail("close", cfg.Close, "invalid close policy %q; must be one of: text, delimiter", cfg.Close)
	}
	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		r.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}
	if cfg.MaxDepth < 0 {
		r.fail("max_depth", cfg.MaxDepth, "max_depth must be >= 0 (0 means unlimited)")
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
}

// checkRuleSource validates the rule source that will win: inline rules,
// then rules_file, then preset.
func checkRuleSource(cfg *config.Config, r *ValidationResult) {
	switch {
	case cfg.Rules != nil:
		if _, err := cfg.Rules.Compile(); err != nil {
			r.fail("rules", cfg.Rules.Name, "%v", err)
		}
		if cfg.RulesFile != "" {
			r.warn("rules_file", cfg.RulesFile, "ignored because inline rules are set")
		}
	case cfg.RulesFile != "":
		if !fileExists(cfg.RulesFile) {
			r.fail("rules_file", cfg.RulesFile, "rule file %q not found", cfg.RulesFile)
		}
	case cfg.Preset != "" && cfg.Preset != config.PresetAuto:
		if names := presets.Names(); !slices.Contains(names, cfg.Preset) {
			r.fail("preset", cfg.Preset, "unknown preset %q; must be auto or one of: %s",
				cfg.Preset, strings.Join(names, ", "))
		}
	}
}

func checkExtensions(cfg *config.Config, r *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			r.warn(fmt.Sprintf("extensions[%d]", i), ext,
				"extension %q has no leading dot; treating it as %q", ext, "."+ext)
		}
	}
}

func checkIgnore(cfg *config.Config, r *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}
