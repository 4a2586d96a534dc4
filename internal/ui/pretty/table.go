package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/runner"
	"github.com/yaklabco/gotok/pkg/token"
)

// Table formatting constants.
const (
	tablePadding       = 2
	tableColumnCount   = 4 // FILE, LOC, KIND, VALUE
	perFileColumnCount = 3 // LOC, KIND, VALUE (no FILE column)
	minFileWidth       = 20
	minLocWidth        = 8
	minKindWidth       = 10
	minValueWidth      = 24
	indentWidth        = 2
	ellipsis           = "..."
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
)

// TableRow represents a single token row in the table.
type TableRow struct {
	File      string
	Location  string
	Kind      string
	Value     string
	Depth     int
	Unknown   bool
	Delimiter bool
}

// TableFormatter formats tokens as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	var fileGroups [][]TableRow
	for _, file := range result.Files {
		if rows := FileRows(file); len(rows) > 0 {
			fileGroups = append(fileGroups, rows)
		}
	}
	if len(fileGroups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(fileGroups, true)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range fileGroups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileTable formats a single file's tokens as a standalone table.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := FileRows(file)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths([][]TableRow{rows}, false)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatFileSummary(rows))
	builder.WriteString("\n")

	return builder.String()
}

// FileRows converts a file's units into table rows in source order. Tree
// units produce one row per branch delimiter and leaf, indented by depth.
func FileRows(file runner.FileOutcome) []TableRow {
	if file.Error != nil {
		return nil
	}

	var rows []TableRow
	add := func(tok token.Token[config.Kind], depth int, delimiter bool) {
		rows = append(rows, TableRow{
			File:      file.Path,
			Location:  tok.Position.String(),
			Kind:      tok.Kind.String(),
			Value:     DisplayValue(tok.Value),
			Depth:     depth,
			Unknown:   tok.Kind.IsInvalid(),
			Delimiter: delimiter,
		})
	}

	var visit func(nodes []token.Node[config.Kind], depth int)
	visit = func(nodes []token.Node[config.Kind], depth int) {
		for _, node := range nodes {
			if !node.IsBranch() {
				add(node.Token, depth, false)
				continue
			}
			add(node.Token, depth, true)
			visit(node.Children, depth+1)
			if node.HasEnd {
				add(node.End, depth, true)
			}
		}
	}

	for _, unit := range file.Units {
		if unit.Nodes != nil {
			visit(unit.Nodes, 0)
			continue
		}
		for _, tok := range unit.Tokens {
			add(tok, 0, false)
		}
	}
	return rows
}

// DisplayValue escapes control characters so a token value fits on one line.
func DisplayValue(value string) string {
	return valueEscaper.Replace(value)
}

var valueEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

type columnWidths struct {
	file  int // zero when the FILE column is hidden
	loc   int
	kind  int
	value int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow, withFile bool) columnWidths {
	widths := columnWidths{
		loc:   minLocWidth,
		kind:  minKindWidth,
		value: minValueWidth,
	}
	if withFile {
		widths.file = minFileWidth
	}

	for _, group := range groups {
		for _, row := range group {
			if withFile {
				widths.file = max(widths.file, runewidth.StringWidth(row.File))
			}
			widths.loc = max(widths.loc, runewidth.StringWidth(row.Location))
			widths.kind = max(widths.kind, runewidth.StringWidth(row.Kind))
			widths.value = max(widths.value, row.Depth*indentWidth+runewidth.StringWidth(row.Value))
		}
	}

	// Constrain to terminal width: value first, then file.
	if total := widths.total(); total > t.termWidth {
		widths.value = max(minValueWidth, widths.value-(total-t.termWidth))
	}
	if total := widths.total(); total > t.termWidth && withFile {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (w columnWidths) total() int {
	columns := perFileColumnCount
	if w.file > 0 {
		columns = tableColumnCount
	}
	return w.file + w.loc + w.kind + w.value + tablePadding*columns
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	var header string
	if widths.file > 0 {
		header = fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
			widths.file, "FILE", widths.loc, "LOC", widths.kind, "KIND", widths.value, "VALUE")
	} else {
		header = fmt.Sprintf(" %-*s  %-*s  %-*s",
			widths.loc, "LOC", widths.kind, "KIND", widths.value, "VALUE")
	}
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

// formatRow formats a single token row.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	value := strings.Repeat(" ", row.Depth*indentWidth) + row.Value
	cells := []string{
		runewidth.FillRight(truncateString(row.Location, widths.loc), widths.loc),
		runewidth.FillRight(truncateString(row.Kind, widths.kind), widths.kind),
		runewidth.FillRight(truncateString(value, widths.value), widths.value),
	}
	if widths.file > 0 {
		cells = append([]string{runewidth.FillRight(truncateFilePath(row.File, widths.file), widths.file)}, cells...)
	}

	return t.rowStyle(row).Render(" " + strings.Join(cells, "  "))
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Unknown:
		return t.styles.TableUnknownRow
	case row.Delimiter:
		return t.styles.TableBranchRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend explains the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: kind invalid = unknown text | indented rows are nested in a branch")
	}

	unknownSample := t.styles.TableUnknownRow.Render(" unknown ")
	branchSample := t.styles.TableBranchRow.Render(" delimiter ")

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = no rule matched  %s = branch start or end", unknownSample, branchSample),
	)
}

// formatFileSummary formats a summary line for a single file.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	var unknown, delimiters int
	for _, row := range rows {
		if row.Unknown {
			unknown++
		}
		if row.Delimiter {
			delimiters++
		}
	}

	parts := []string{fmt.Sprintf("%d tokens", len(rows))}
	if delimiters > 0 {
		parts = append(parts, t.styles.TableBranchRow.Render(fmt.Sprintf("%d delimiters", delimiters)))
	}
	if unknown > 0 {
		parts = append(parts, t.styles.Unknown.Render(fmt.Sprintf("%d unknown", unknown)))
	}
	return " " + strings.Join(parts, " | ")
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d files tokenized", stats.FilesProcessed),
		fmt.Sprintf("%d tokens", stats.Tokens),
	}
	if stats.Unknown > 0 {
		parts = append(parts, t.styles.Unknown.Render(fmt.Sprintf("%d unknown", stats.Unknown)))
	}
	if stats.Unterminated > 0 {
		parts = append(parts, t.styles.Unterminated.Render(fmt.Sprintf("%d unterminated", stats.Unterminated)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxWidth cells, adding "..." if truncated.
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	keep := maxWidth
	prefix := ""
	if maxWidth > len(ellipsis) {
		keep = maxWidth - len(ellipsis)
		prefix = ellipsis
	}

	runes := []rune(path)
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > keep {
			break
		}
		width += w
		start--
	}
	return prefix + string(runes[start:])
}
