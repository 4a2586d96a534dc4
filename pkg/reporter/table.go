package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gotok/internal/ui/pretty"
	"github.com/yaklabco/gotok/pkg/runner"
)

// fallbackWidth is assumed when the writer is not a terminal.
const fallbackWidth = 100

// TableReporter prints one table row per token.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter returns a TableReporter writing to opts.Writer.
func NewTableReporter(opts Options) *TableReporter {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(color)
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, color, termWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	result = relativize(result, r.opts.WorkingDir)
	if !r.opts.ShowTokens {
		result = problemsOnly(result)
	}

	switch {
	case r.opts.PerFile:
		r.writePerFile(result)
	default:
		fmt.Fprint(r.bw, r.formatter.FormatTable(result))
	}
	r.writeFileErrors(result)

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, result.Duration.String()))
	}
	return problemCount(result), nil
}

func (r *TableReporter) writePerFile(result *runner.Result) {
	for _, file := range result.Files {
		if table := r.formatter.FormatFileTable(file); table != "" {
			fmt.Fprintf(r.bw, "\n%s\n%s", r.styles.Bold.Render(file.Path), table)
		}
	}
	if !r.opts.ShowSummary {
		return
	}
	rule := r.styles.TableSeparator.Render(strings.Repeat("═", fallbackWidth*4/5))
	fmt.Fprintf(r.bw, "\n%s\n%s\n", rule, r.styles.Bold.Render("Overall Summary"))
}

func (r *TableReporter) writeFileErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Failure.Render("error: "+file.Error.Error()))
	}
}

// problemsOnly strips trees and keeps only the unknown tokens of each unit.
func problemsOnly(result *runner.Result) *runner.Result {
	out := *result
	out.Files = make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		units := make([]runner.UnitResult, 0, len(file.Units))
		for _, unit := range file.Units {
			tokens := unit.Tokens
			unit.Nodes, unit.Tokens = nil, nil
			for _, tok := range tokens {
				if tok.Kind.IsInvalid() {
					unit.Tokens = append(unit.Tokens, tok)
				}
			}
			units = append(units, unit)
		}
		file.Units = units
		out.Files[i] = file
	}
	return &out
}

func termWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallbackWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackWidth
}
