package analysis

import "time"

// Problem types.
const (
	ProblemUnknown      = "unknown"
	ProblemUnterminated = "unterminated"
)

// Report contains pre-computed views of a tokenizer run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Problems lists unknown tokens and unterminated branches.
	Problems []ProblemEntry `json:"problems,omitempty"`

	// ByFile contains per-file statistics.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind contains per-kind statistics.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// ProblemEntry is one unknown token or unterminated branch.
type ProblemEntry struct {
	FilePath string `json:"filePath"`
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Preset   string `json:"preset"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int `json:"files"`
	FilesErrored      int `json:"filesErrored"`
	FilesWithProblems int `json:"filesWithProblems"`
	Units             int `json:"units"`
	Tokens            int `json:"tokens"`
	Branches          int `json:"branches"`
	Unknown           int `json:"unknown"`
	Unterminated      int `json:"unterminated"`
	MaxDepth          int `json:"maxDepth"`
}

// HasProblems returns true if any token is unknown or any branch unterminated.
func (t Totals) HasProblems() bool {
	return t.Unknown > 0 || t.Unterminated > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path         string   `json:"path"`
	Languages    []string `json:"languages,omitempty"`
	Presets      []string `json:"presets,omitempty"`
	Units        int      `json:"units"`
	Tokens       int      `json:"tokens"`
	Branches     int      `json:"branches"`
	Unknown      int      `json:"unknown"`
	Unterminated int      `json:"unterminated"`
	Depth        int      `json:"depth"`
	Error        string   `json:"error,omitempty"`
}

// KindAnalysis contains aggregated data for a single token kind.
type KindAnalysis struct {
	Kind   string   `json:"kind"`
	Tokens int      `json:"tokens"`
	Files  []string `json:"files,omitempty"`
}
