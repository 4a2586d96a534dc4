package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotok/internal/ui/pretty"
	"github.com/yaklabco/gotok/pkg/analysis"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	kindColWidth      = 30
	fileColWidth      = 56
	numColWidth       = 8
	maxKindNameLength = 28
	maxFilePathLength = 54
)

// padRight pads a string to the given display width.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads a string to the given display width on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Files == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No files to tokenize."))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderKindTable(report.ByKind)
	} else {
		r.renderKindTable(report.ByKind)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Kinds Summary"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, kind := range kinds {
		name := kind.Kind
		if runewidth.StringWidth(name) > maxKindNameLength {
			name = runewidth.Truncate(name, maxKindNameLength+1, "…")
		}

		styled := padRight(name, kindColWidth)
		if name == "invalid" {
			styled = r.styles.TableUnknownRow.Render(styled)
		} else {
			styled = r.styles.Kind.Render(styled)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			styled,
			padLeft(strconv.Itoa(kind.Tokens), numColWidth),
			padLeft(strconv.Itoa(len(kind.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Depth", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Unknown", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Open", numColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if runewidth.StringWidth(path) > maxFilePathLength {
			runes := []rune(path)
			path = "…" + string(runes[len(runes)-(maxFilePathLength-1):])
		}

		styled := padRight(path, fileColWidth)
		switch {
		case file.Error != "":
			fmt.Fprintf(r.out, "%s %s\n", r.styles.Failure.Render(styled), r.styles.Dim.Render(file.Error))
			continue
		case file.Unterminated > 0:
			styled = r.styles.Unterminated.Render(styled)
		case file.Unknown > 0:
			styled = r.styles.TableUnknownRow.Render(styled)
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(file.Tokens), numColWidth),
			padLeft(strconv.Itoa(file.Depth), numColWidth),
			padLeft(strconv.Itoa(file.Unknown), numColWidth),
			padLeft(strconv.Itoa(file.Unterminated), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	tokenWord := "tokens"
	if totals.Tokens == 1 {
		tokenWord = "token"
	}
	fileWord := "files"
	if totals.Files == 1 {
		fileWord = "file"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s", totals.Tokens, tokenWord, totals.Files, fileWord)}
	if totals.Branches > 0 {
		parts = append(parts, fmt.Sprintf("%d branches (max depth %d)", totals.Branches, totals.MaxDepth))
	}
	if totals.Unknown > 0 {
		parts = append(parts, r.styles.Unknown.Render(fmt.Sprintf("%d unknown", totals.Unknown)))
	}
	if totals.Unterminated > 0 {
		parts = append(parts, r.styles.Unterminated.Render(fmt.Sprintf("%d unterminated", totals.Unterminated)))
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, r.styles.Failure.Render(fmt.Sprintf("%d failed", totals.FilesErrored)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}
