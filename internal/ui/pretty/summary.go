package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gotok/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryTopKinds     = 5
)

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 tokens (6 kinds) in 3 files, 2 unknown, 1 unterminated".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d %s (%d %s) in %d %s",
		stats.Tokens, plural(stats.Tokens, "token", "tokens"),
		len(stats.TokensByKind), plural(len(stats.TokensByKind), "kind", "kinds"),
		stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"),
	)}

	if stats.Unknown == 0 && stats.Unterminated == 0 && stats.FilesErrored == 0 {
		return parts[0] + ", " + s.Success.Render("no problems") + "\n"
	}

	if stats.Unknown > 0 {
		parts = append(parts, s.Unknown.Render(fmt.Sprintf("%d unknown", stats.Unknown)))
	}
	if stats.Unterminated > 0 {
		parts = append(parts, s.Unterminated.Render(fmt.Sprintf("%d unterminated", stats.Unterminated)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files tokenized:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.Units > stats.FilesProcessed {
		builder.WriteString("  Units:             " +
			s.SummaryValue.Render(strconv.Itoa(stats.Units)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Tokens:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tokens)) + "\n")
	builder.WriteString("  Branches:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Branches)) + "\n")
	if stats.Unknown > 0 {
		builder.WriteString("  Unknown:           " +
			s.Unknown.Render(strconv.Itoa(stats.Unknown)) + "\n")
	}
	if stats.Unterminated > 0 {
		builder.WriteString("  Unterminated:      " +
			s.Unterminated.Render(strconv.Itoa(stats.Unterminated)) + "\n")
	}

	if kinds := TopKinds(stats.TokensByKind, summaryTopKinds); len(kinds) > 0 {
		builder.WriteString("\n  Top kinds:\n")
		for _, entry := range kinds {
			fmt.Fprintf(&builder, "    %-16s %s\n", s.Kind.Render(entry.Key), s.SummaryValue.Render(strconv.Itoa(entry.Value)))
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.Unterminated > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Tokenized with unterminated branches or failed files"))
	case stats.Unknown > 0:
		builder.WriteString(s.Unknown.Render("Tokenized with unknown text"))
	default:
		builder.WriteString(s.Success.Render("Tokenized cleanly"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// TopKinds returns up to limit kinds ordered by descending count, then name.
// A limit of zero or less returns every kind.
func TopKinds(byKind map[string]int, limit int) []lo.Entry[string, int] {
	entries := lo.Entries(byKind)
	slices.SortFunc(entries, func(a, b lo.Entry[string, int]) int {
		return cmp.Or(cmp.Compare(b.Value, a.Value), cmp.Compare(a.Key, b.Key))
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
