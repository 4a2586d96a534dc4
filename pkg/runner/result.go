package runner

import (
	"bytes"
	"time"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/fsutil"
	"github.com/yaklabco/gotok/pkg/token"
)

// UnitResult holds the tokens of one tokenized unit: a whole file, or one
// code block of a Markdown file. Positions and offsets are relative to the
// file.
type UnitResult struct {
	// Language is the detected or declared language.
	Language string

	// Preset is the name of the rule set used.
	Preset string

	// LineOffset is the number of file lines before the unit.
	LineOffset int

	// Nodes is the token tree (tree mode only).
	Nodes []token.Node[config.Kind]

	// Tokens is the flat token list. In tree mode it is the flattened tree.
	Tokens []token.Token[config.Kind]

	// Unknown counts tokens that no rule matched.
	Unknown int

	// Unterminated counts branches that reached the end of input.
	Unterminated int

	// Branches counts branch nodes.
	Branches int

	// Depth is the maximum branch nesting depth.
	Depth int
}

// FileOutcome is the result of processing one input.
type FileOutcome struct {
	// Path is the file path that was processed, or "-" for stdin.
	Path string

	// Info describes the content that was read. Nil on read errors.
	Info *fsutil.FileInfo

	// Source is the content that was read.
	Source []byte

	// Units are the tokenized parts of the file in source order.
	Units []UnitResult

	// Duration is the time spent on this file.
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// TokenCount returns the number of tokens across all units.
func (f FileOutcome) TokenCount() int {
	total := 0
	for _, u := range f.Units {
		total += len(u.Tokens)
	}
	return total
}

// SourceLine returns the 1-based line of Source without its line ending,
// or "" when the line does not exist.
func (f FileOutcome) SourceLine(line int) string {
	if line < 1 {
		return ""
	}
	rest := f.Source
	for range line - 1 {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return string(bytes.TrimSuffix(rest, []byte("\r")))
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of inputs found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of inputs tokenized successfully.
	FilesProcessed int

	// FilesErrored is the number of inputs that could not be processed.
	FilesErrored int

	// Units is the number of tokenized units.
	Units int

	// Tokens is the total number of tokens.
	Tokens int

	// Branches is the total number of branch nodes.
	Branches int

	// Unknown is the number of tokens no rule matched.
	Unknown int

	// Unterminated is the number of branches missing their end delimiter.
	Unterminated int

	// TokensByKind maps kind names to token counts.
	TokensByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each input, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Duration is the wall time of the run.
	Duration time.Duration
}

// HasUnterminated reports whether any branch reached the end of input.
func (r *Result) HasUnterminated() bool {
	return r != nil && r.Stats.Unterminated > 0
}

// HasUnknown reports whether any text matched no rule.
func (r *Result) HasUnknown() bool {
	return r != nil && r.Stats.Unknown > 0
}

// HasErrors reports whether any input failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{TokensByKind: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	for _, unit := range outcome.Units {
		r.Stats.Units++
		r.Stats.Tokens += len(unit.Tokens)
		r.Stats.Branches += unit.Branches
		r.Stats.Unknown += unit.Unknown
		r.Stats.Unterminated += unit.Unterminated
		for _, tok := range unit.Tokens {
			r.Stats.TokensByKind[tok.Kind.String()]++
		}
	}
}
