package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotok/internal/ui/pretty"
	"github.com/yaklabco/gotok/pkg/analysis"
	"github.com/yaklabco/gotok/pkg/runner"
)

// TextReporter formats results as a styled token listing: a tree view in
// tree mode, one token per line in flat mode.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to tokenize."))
		}
		return 0, nil
	}

	for _, file := range relativize(result, r.opts.WorkingDir).Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return problemCount(result), nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) {
	var problems []analysis.ProblemEntry
	for _, unit := range file.Units {
		problems = append(problems, analysis.UnitProblems(file.Path, unit)...)
	}

	if r.opts.ShowTokens {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, file.TokenCount()))
		embedded := len(file.Units) > 1 || (len(file.Units) == 1 && file.Units[0].LineOffset > 0)
		for _, unit := range file.Units {
			if embedded {
				fmt.Fprintln(r.bw, r.styles.Dim.Render(
					fmt.Sprintf("-- %s block at line %d (%s)", unit.Language, unit.LineOffset+1, unit.Preset)))
			}
			if unit.Nodes != nil {
				fmt.Fprint(r.bw, r.styles.FormatTree(unit.Nodes))
			} else {
				fmt.Fprint(r.bw, r.styles.FormatTokens(unit.Tokens))
			}
		}
	} else if len(problems) > 0 {
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(file.Path))
	}

	for _, problem := range problems {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = file.SourceLine(problem.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatProblem(problem, sourceLine))
	}

	if r.opts.ShowTokens || len(problems) > 0 {
		fmt.Fprintln(r.bw)
	}
}
