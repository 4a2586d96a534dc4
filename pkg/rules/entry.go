// Package rules defines the ordered rule table the tokenizer matches against.
//
// A table holds three kinds of entries, tried in insertion order:
//   - predicate rules, which accept a run of characters one at a time;
//   - literal ("boring") tokens, which match a fixed character sequence;
//   - branch delimiter pairs, whose start literal opens a nested region that
//     the end literal closes.
package rules

import "fmt"

// EntryType identifies the matching strategy of a table entry.
type EntryType uint8

const (
	EntryPredicate EntryType = iota
	EntryLiteral
	EntryBranch
)

// String returns the lowercase name of the entry type.
func (t EntryType) String() string {
	switch t {
	case EntryPredicate:
		return "predicate"
	case EntryLiteral:
		return "literal"
	case EntryBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Entry is a single row of a rule table.
// Only the fields relevant to Type are set.
type Entry[K any] struct {
	Type EntryType

	// Kind is assigned to tokens produced by this entry.
	Kind K

	// Predicate drives EntryPredicate entries.
	Predicate Predicate

	// Literal is the text of an EntryLiteral, or the start delimiter of an
	// EntryBranch.
	Literal string

	// End is the end delimiter of an EntryBranch.
	End string

	// Name is an optional label used in listings and logs.
	Name string
}

// Label returns Name when set, otherwise a description of the entry.
func (e Entry[K]) Label() string {
	if e.Name != "" {
		return e.Name
	}
	switch e.Type {
	case EntryPredicate:
		return "rule"
	case EntryLiteral:
		return fmt.Sprintf("%q", e.Literal)
	case EntryBranch:
		return fmt.Sprintf("%q..%q", e.Literal, e.End)
	default:
		return "?"
	}
}

// NewPredicate returns a predicate-rule entry.
func NewPredicate[K any](pred Predicate, kind K) Entry[K] {
	return Entry[K]{Type: EntryPredicate, Predicate: pred, Kind: kind}
}

// NewLiteral returns a literal-token entry.
func NewLiteral[K any](literal string, kind K) Entry[K] {
	return Entry[K]{Type: EntryLiteral, Literal: literal, Kind: kind}
}

// NewBranch returns a branch delimiter-pair entry.
func NewBranch[K any](start, end string, kind K) Entry[K] {
	return Entry[K]{Type: EntryBranch, Literal: start, End: end, Kind: kind}
}

// validate reports structural problems that would make an entry unmatchable.
func (e Entry[K]) validate() error {
	switch e.Type {
	case EntryPredicate:
		if e.Predicate == nil {
			return fmt.Errorf("%w: predicate rule without predicate", ErrInvalidEntry)
		}
	case EntryLiteral:
		if e.Literal == "" {
			return fmt.Errorf("%w: empty literal", ErrInvalidEntry)
		}
	case EntryBranch:
		if e.Literal == "" || e.End == "" {
			return fmt.Errorf("%w: branch %s needs non-empty start and end", ErrInvalidEntry, e.Label())
		}
	default:
		return fmt.Errorf("%w: unknown entry type %d", ErrInvalidEntry, e.Type)
	}
	return nil
}
