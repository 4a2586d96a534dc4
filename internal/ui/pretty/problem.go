package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotok/pkg/analysis"
)

// FormatProblem formats an unknown token or unterminated branch for terminal
// output, optionally followed by the source line with a caret.
func (s *Styles) FormatProblem(problem analysis.ProblemEntry, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(problem.FilePath),
		problem.Line,
		problem.Column,
	)

	var label, message string
	switch problem.Type {
	case analysis.ProblemUnterminated:
		label = s.Unterminated.Render("unterminated")
		message = fmt.Sprintf("%s opened by %q is never closed", problem.Kind, problem.Value)
	default:
		label = s.Unknown.Render("unknown")
		message = fmt.Sprintf("no rule matches %q", DisplayValue(problem.Value))
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location, label, message, s.Dim.Render("("+problem.Preset+")"))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, problem.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker under the
// given 1-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		runes := []rune(line)
		before := string(runes[:min(column-1, len(runes))])
		padding := indent + strings.Repeat(" ", runewidth.StringWidth(before))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, tokens int) string {
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%d tokens)", tokens))
}
