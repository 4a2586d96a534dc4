// Package pretty renders tokens, trees, tables and summaries for terminals.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds one lipgloss style per visual role.
type Styles struct {
	Unterminated lipgloss.Style
	Unknown      lipgloss.Style
	Info         lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Value      lipgloss.Style
	Delimiter  lipgloss.Style
	Guide      lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader     lipgloss.Style
	TableUnknownRow lipgloss.Style
	TableBranchRow  lipgloss.Style
	TableLegend     lipgloss.Style
	TableSeparator  lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	red     = "9"
	green   = "10"
	yellow  = "11"
	blue    = "12"
	magenta = "13"
	cyan    = "14"
	grey    = "8"
	silver  = "7"
)

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(c string) lipgloss.Style { return plain }
	bold := plain
	if color {
		fg = func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
		bold = plain.Bold(true)
	}
	strong := func(c string) lipgloss.Style { return fg(c).Bold(color) }

	return &Styles{
		Unterminated: strong(red),
		Unknown:      strong(yellow),
		Info:         strong(blue),

		FilePath:   bold,
		Location:   fg(grey),
		Kind:       fg(cyan),
		Value:      plain,
		Delimiter:  strong(magenta),
		Guide:      fg(grey),
		SourceLine: fg(silver),
		Caret:      fg(red),

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      strong(green),
		Failure:      strong(red),

		TableHeader:     strong(silver),
		TableUnknownRow: fg(yellow),
		TableBranchRow:  fg(magenta),
		TableLegend:     fg(grey).Italic(color),
		TableSeparator:  fg(grey),

		Dim:  fg(grey),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode of "always", "never" or "auto"
// against w. Auto, and any unrecognised mode, enables color only for
// terminals when NO_COLOR is unset.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
