package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotok/pkg/analysis"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/runner"
	"github.com/yaklabco/gotok/pkg/token"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single input's results.
type JSONFile struct {
	Path  string     `json:"path"`
	Units []JSONUnit `json:"units"`
	Error string     `json:"error,omitempty"`
}

// JSONUnit is one tokenized unit. Tree holds the nested nodes in tree mode;
// Tokens holds the token list in flat mode.
type JSONUnit struct {
	Language     string      `json:"language,omitempty"`
	Preset       string      `json:"preset"`
	LineOffset   int         `json:"lineOffset,omitempty"`
	Tree         []JSONNode  `json:"tree,omitempty"`
	Tokens       []JSONToken `json:"tokens,omitempty"`
	Unknown      int         `json:"unknown"`
	Unterminated int         `json:"unterminated"`
}

// JSONToken represents a single token.
type JSONToken struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// JSONNode represents a leaf, or a branch with its children and end delimiter.
type JSONNode struct {
	JSONToken

	Children     []JSONNode `json:"children,omitempty"`
	Close        *JSONToken `json:"close,omitempty"`
	Unterminated bool       `json:"unterminated,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesTokenized int            `json:"filesTokenized"`
	FilesErrored   int            `json:"filesErrored"`
	Units          int            `json:"units"`
	Tokens         int            `json:"tokens"`
	Branches       int            `json:"branches"`
	Unknown        int            `json:"unknown"`
	Unterminated   int            `json:"unterminated"`
	ByKind         map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return problemCount(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFile, 0),
		Summary: JSONSummary{ByKind: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for _, file := range relativize(result, r.opts.WorkingDir).Files {
		jf := JSONFile{Path: file.Path, Units: make([]JSONUnit, 0, len(file.Units))}
		if file.Error != nil {
			jf.Error = file.Error.Error()
		}

		for _, unit := range file.Units {
			ju := JSONUnit{
				Language:     unit.Language,
				Preset:       unit.Preset,
				LineOffset:   unit.LineOffset,
				Unknown:      unit.Unknown,
				Unterminated: unit.Unterminated,
			}
			if unit.Nodes != nil {
				ju.Tree = jsonNodes(unit.Nodes)
			} else {
				ju.Tokens = make([]JSONToken, 0, len(unit.Tokens))
				for _, tok := range unit.Tokens {
					ju.Tokens = append(ju.Tokens, jsonToken(tok))
				}
			}
			jf.Units = append(jf.Units, ju)
		}

		output.Files = append(output.Files, jf)
	}

	stats := result.Stats
	output.Summary.FilesTokenized = stats.FilesProcessed
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Units = stats.Units
	output.Summary.Tokens = stats.Tokens
	output.Summary.Branches = stats.Branches
	output.Summary.Unknown = stats.Unknown
	output.Summary.Unterminated = stats.Unterminated
	for kind, n := range stats.TokensByKind {
		output.Summary.ByKind[kind] = n
	}

	return output
}

func jsonToken(tok token.Token[config.Kind]) JSONToken {
	return JSONToken{
		Kind:   tok.Kind.String(),
		Value:  tok.Value,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
		Start:  tok.StartOffset,
		End:    tok.EndOffset,
	}
}

func jsonNodes(nodes []token.Node[config.Kind]) []JSONNode {
	out := make([]JSONNode, 0, len(nodes))
	for _, node := range nodes {
		jn := JSONNode{JSONToken: jsonToken(node.Token)}
		if node.IsBranch() {
			jn.Children = jsonNodes(node.Children)
			if node.HasEnd {
				end := jsonToken(node.End)
				jn.Close = &end
			} else {
				jn.Unterminated = true
			}
		}
		out = append(out, jn)
	}
	return out
}
