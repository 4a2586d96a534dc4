package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/runner"
	"github.com/yaklabco/gotok/pkg/token"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// kindStats accumulates per-kind data.
type kindStats struct {
	tokens int
	files  map[string]bool
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	kinds := make(map[string]*kindStats)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			if opts.IncludeByFile {
				report.ByFile = append(report.ByFile, FileAnalysis{Path: displayPath, Error: file.Error.Error()})
			}
			continue
		}

		fa := FileAnalysis{Path: displayPath}
		for _, unit := range file.Units {
			fa.Units++
			fa.Tokens += len(unit.Tokens)
			fa.Branches += unit.Branches
			fa.Unknown += unit.Unknown
			fa.Unterminated += unit.Unterminated
			fa.Depth = max(fa.Depth, unit.Depth)
			if unit.Language != "" {
				fa.Languages = append(fa.Languages, unit.Language)
			}
			fa.Presets = append(fa.Presets, unit.Preset)

			for _, tok := range unit.Tokens {
				name := tok.Kind.String()
				ks, ok := kinds[name]
				if !ok {
					ks = &kindStats{files: make(map[string]bool)}
					kinds[name] = ks
				}
				ks.tokens++
				ks.files[displayPath] = true
			}

			if opts.IncludeProblems {
				report.Problems = append(report.Problems, UnitProblems(displayPath, unit)...)
			}
		}
		fa.Languages = lo.Uniq(fa.Languages)
		fa.Presets = lo.Uniq(fa.Presets)

		report.Totals.Units += fa.Units
		report.Totals.Tokens += fa.Tokens
		report.Totals.Branches += fa.Branches
		report.Totals.Unknown += fa.Unknown
		report.Totals.Unterminated += fa.Unterminated
		report.Totals.MaxDepth = max(report.Totals.MaxDepth, fa.Depth)
		if fa.Unknown > 0 || fa.Unterminated > 0 {
			report.Totals.FilesWithProblems++
		}

		if opts.IncludeByFile {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByFile {
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}
	if opts.IncludeByKind {
		report.ByKind = buildByKind(kinds, opts)
	}

	return report
}

// UnitProblems lists the unknown tokens and unterminated branches of a unit
// in source order.
func UnitProblems(path string, unit runner.UnitResult) []ProblemEntry {
	var problems []ProblemEntry

	unknown := func(tok token.Token[config.Kind]) {
		problems = append(problems, ProblemEntry{
			FilePath: path,
			Type:     ProblemUnknown,
			Kind:     tok.Kind.String(),
			Value:    tok.Value,
			Line:     tok.Position.Line,
			Column:   tok.Position.Column,
			Preset:   unit.Preset,
		})
	}

	if unit.Nodes != nil {
		// Branch ends closed by text are not unknown text.
		leaves := token.FindAll(unit.Nodes, func(n *token.Node[config.Kind]) bool {
			return n.IsLeaf() && n.Kind().IsInvalid()
		})
		for _, n := range leaves {
			unknown(n.Token)
		}
	} else {
		for _, tok := range unit.Tokens {
			if tok.Kind.IsInvalid() {
				unknown(tok)
			}
		}
	}

	open := token.FindAll(unit.Nodes, func(n *token.Node[config.Kind]) bool {
		return n.IsBranch() && !n.HasEnd
	})
	for _, n := range open {
		problems = append(problems, ProblemEntry{
			FilePath: path,
			Type:     ProblemUnterminated,
			Kind:     n.Kind().String(),
			Value:    n.Token.Value,
			Line:     n.Token.Position.Line,
			Column:   n.Token.Position.Column,
			Preset:   unit.Preset,
		})
	}

	slices.SortStableFunc(problems, func(a, b ProblemEntry) int {
		return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Column, b.Column))
	})
	return problems
}

// buildByKind constructs the ByKind slice from accumulated data.
func buildByKind(kinds map[string]*kindStats, opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(kinds))
	for name, ks := range kinds {
		files := lo.Keys(ks.files)
		slices.Sort(files)
		result = append(result, KindAnalysis{Kind: name, Tokens: ks.tokens, Files: files})
	}
	sortKindAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		result := cmp.Compare(left.Tokens, right.Tokens)
		if desc {
			result = -result
		}
		return cmp.Or(result, cmp.Compare(left.Kind, right.Kind))
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortByProblems:
			// Always most problems first.
			return cmp.Or(
				cmp.Compare(right.Unterminated, left.Unterminated),
				cmp.Compare(right.Unknown, left.Unknown),
				cmp.Compare(left.Path, right.Path),
			)
		default: // SortByCount
			result := cmp.Compare(left.Tokens, right.Tokens)
			if desc {
				result = -result
			}
			return cmp.Or(result, cmp.Compare(left.Path, right.Path))
		}
	})
}
