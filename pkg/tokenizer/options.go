package tokenizer

import "fmt"

// ClosePolicy selects how a nested branch recognises its end delimiter.
type ClosePolicy uint8

const (
	// CloseByText closes the innermost branch when the matcher produces a
	// leaf whose text equals the branch's end delimiter, whatever kind the
	// leaf was given.
	CloseByText ClosePolicy = iota

	// CloseByDelimiter checks the innermost branch's own end delimiter at the
	// current position before consulting the table. Delimiters whose start
	// and end text are identical (quotes, pipes) only work with this policy.
	CloseByDelimiter
)

// String returns the configuration name of the policy.
func (p ClosePolicy) String() string {
	switch p {
	case CloseByText:
		return "text"
	case CloseByDelimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// ParseClosePolicy parses "text" or "delimiter". Empty input means CloseByText.
func ParseClosePolicy(s string) (ClosePolicy, error) {
	switch s {
	case "text", "":
		return CloseByText, nil
	case "delimiter":
		return CloseByDelimiter, nil
	default:
		return CloseByText, fmt.Errorf("unknown close policy %q; valid policies: text, delimiter", s)
	}
}

// Options tunes tree building. The zero value is ready to use.
type Options struct {
	// MaxDepth bounds branch nesting. A branch start found at the limit is
	// emitted as a plain leaf of the branch kind. 0 means unlimited.
	MaxDepth int

	// Close selects the end-delimiter detection policy.
	Close ClosePolicy
}

// DefaultOptions returns the options used by Tree and Stream.
func DefaultOptions() Options {
	return Options{
		MaxDepth: 0,
		Close:    CloseByText,
	}
}
