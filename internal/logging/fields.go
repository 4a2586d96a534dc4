package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig   = "config"
	FieldMode     = "mode"
	FieldPreset   = "preset"
	FieldLanguage = "language"
	FieldClose    = "close"
	FieldMaxDepth = "max_depth"
	FieldJobs     = "jobs"

	// Rule listing fields.
	FieldKind        = "kind"
	FieldMatch       = "match"
	FieldRules       = "rules"
	FieldLanguages   = "languages"
	FieldDescription = "description"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldUnits           = "units"
	FieldTokens          = "tokens"
	FieldUnknown         = "unknown"
	FieldUnterminated    = "unterminated"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
