package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes an inline rule set and every option.
	// If false, generates a minimal template.
	Full bool

	// Preset is written as the preset value. Empty means "auto".
	Preset string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	preset := opts.Preset
	if preset == "" {
		preset = PresetAuto
	}
	if strings.ContainsAny(preset, "\n\"") {
		return nil, fmt.Errorf("%w: preset name %q", ErrInvalidRule, preset)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	fmt.Fprintf(&buf, `# Output shape: tree (nested branches) or flat (token list)
mode: tree

# Built-in rule set, or "auto" to pick one from the file language
preset: %s

# Maximum branch nesting depth (0 = unlimited)
max_depth: 0

# Branch close policy: text or delimiter
# close: text

# Tokenize fenced code blocks of Markdown files
code_blocks: false

# File extensions to tokenize when walking directories
# extensions:
#   - .c
#   - .h

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`, preset)

	if !opts.Full {
		return buf.Bytes(), nil
	}

	buf.WriteString(`
# Path to a rule set file (overrides preset)
# rules_file: rules.yaml

# Inline rule set (overrides rules_file and preset)
# Rules are tried in order; the first match wins.
rules:
  name: custom
  close: text
  rules:
    - kind: number
      class: digit
    - kind: ident
      class: ident
    - kind: string
      branch: ['"', '"']
    - kind: paren
      branch: ["(", ")"]
    - kind: operator
      literals: ["==", "=", "+", "-", "*", "/"]
    - kind: semicolon
      literal: ";"
`)
	fmt.Fprintf(&buf, "\n# Character classes: %s\n", strings.Join(ClassNames(), ", "))

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gotok configuration
# See: https://github.com/yaklabco/gotok`
}
