package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size of reporter output writers.
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	// ErrorWriter receives errors. Defaults to os.Stderr.
	ErrorWriter io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowTokens lists every token. When false the text and table formats
	// list only unknown tokens and unterminated branches.
	ShowTokens bool

	// ShowContext prints the source line and a caret under each problem.
	ShowContext bool

	// ShowSummary appends the run statistics.
	ShowSummary bool

	// Compact minifies JSON output.
	Compact bool

	// PerFile prints one table per input (table format).
	PerFile bool

	SummaryOrder SummaryOrder

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns the options used by the tokenize command when no
// flags are given.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowTokens:   true,
		ShowContext:  true,
		ShowSummary:  true,
		SummaryOrder: SummaryOrderKinds,
	}
}
