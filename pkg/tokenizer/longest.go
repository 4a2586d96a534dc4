package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gotok/pkg/rules"
)

// Segment is one piece of a symbol run split by LongestMatch.
type Segment[K any] struct {
	// Text is the piece of the run.
	Text string

	// Kind is the literal's kind, or the zero kind for an unmatched remainder.
	Kind K

	// Offset is the byte offset of Text within the run.
	Offset int

	// Column is the number of characters of the run before Text.
	Column int

	// Matched is false for the unmatched remainder.
	Matched bool
}

// LongestMatch splits run into literal tokens, repeatedly taking the longest
// literal that prefixes what is left. Ties go to the literal listed first.
// When no literal prefixes the remainder, the whole remainder becomes one
// unmatched segment and splitting stops.
func LongestMatch[K any](literals []rules.Entry[K], run string) []Segment[K] {
	var segments []Segment[K]
	offset, column := 0, 0

	for offset < len(run) {
		rest := run[offset:]
		best := -1
		for i, lit := range literals {
			if lit.Literal == "" || !strings.HasPrefix(rest, lit.Literal) {
				continue
			}
			if best < 0 || len(lit.Literal) > len(literals[best].Literal) {
				best = i
			}
		}

		if best < 0 {
			var zero K
			segments = append(segments, Segment[K]{Text: rest, Kind: zero, Offset: offset, Column: column})
			break
		}

		text := literals[best].Literal
		segments = append(segments, Segment[K]{
			Text:    text,
			Kind:    literals[best].Kind,
			Offset:  offset,
			Column:  column,
			Matched: true,
		})
		offset += len(text)
		column += utf8.RuneCountInString(text)
	}

	return segments
}
