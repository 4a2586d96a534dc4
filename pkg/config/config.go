// Package config defines core configuration types for gotok.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// Mode selects the tokenizer output shape.
type Mode string

const (
	// ModeTree nests tokens between branch delimiters.
	ModeTree Mode = "tree"

	// ModeFlat produces a flat token list with longest-match literal splitting.
	ModeFlat Mode = "flat"
)

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	switch m {
	case ModeTree, ModeFlat:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for tokenization results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Close policy names, matching tokenizer.ParseClosePolicy.
const (
	CloseText      = "text"
	CloseDelimiter = "delimiter"
)

// PresetAuto asks the runner to choose a preset per input by language detection.
const PresetAuto = "auto"

// Config is the root configuration structure for gotok.
type Config struct {
	// Mode is "tree" or "flat".
	Mode Mode `yaml:"mode"`

	// Preset names a built-in rule set, or "auto".
	Preset string `yaml:"preset"`

	// RulesFile is a path to a YAML rule set. It takes precedence over Preset.
	RulesFile string `yaml:"rules_file,omitempty"`

	// Rules is an inline rule set. It takes precedence over RulesFile and Preset.
	Rules *RuleSet `yaml:"rules,omitempty"`

	// MaxDepth bounds branch nesting in tree mode (0 = unlimited).
	MaxDepth int `yaml:"max_depth"`

	// Close is the branch close policy: "text" or "delimiter". Empty means
	// the rule set's own preference, then "text".
	Close string `yaml:"close,omitempty"`

	// Extensions limits directory discovery to these file extensions.
	// Empty means every regular file.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CodeBlocks tokenizes fenced code blocks of Markdown inputs instead of
	// the Markdown text itself.
	CodeBlocks bool `yaml:"code_blocks"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict makes unterminated branches and unknown tokens fail the run.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Mode:     ModeTree,
		Preset:   PresetAuto,
		MaxDepth: 0,
		Format:   FormatText,
		Jobs:     0, // 0 means use NumCPU
	}
}
