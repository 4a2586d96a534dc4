package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is returned by Builder.Build for entries that can never match.
var ErrInvalidEntry = errors.New("invalid rule entry")

// Table is an immutable, ordered list of entries. Order is significant: the
// first entry that matches wins. A Table is safe for concurrent use.
type Table[K any] struct {
	entries []Entry[K]
}

// NewTable creates a table from entries without validation. The slice is
// copied.
func NewTable[K any](entries ...Entry[K]) *Table[K] {
	return &Table[K]{entries: append([]Entry[K](nil), entries...)}
}

// Len returns the number of entries.
func (t *Table[K]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// At returns the i-th entry.
func (t *Table[K]) At(i int) Entry[K] {
	return t.entries[i]
}

// Entries returns a copy of the entries in table order.
func (t *Table[K]) Entries() []Entry[K] {
	if t == nil {
		return nil
	}
	return append([]Entry[K](nil), t.entries...)
}

// Predicates returns the predicate-rule entries in table order.
func (t *Table[K]) Predicates() []Entry[K] {
	return t.filter(func(e Entry[K]) bool { return e.Type == EntryPredicate })
}

// Literals returns every fixed text the table can match, in table order:
// literal entries, and for branch entries their start and end delimiters
// carrying the branch kind.
func (t *Table[K]) Literals() []Entry[K] {
	if t == nil {
		return nil
	}
	var out []Entry[K]
	for _, e := range t.entries {
		switch e.Type {
		case EntryLiteral:
			out = append(out, e)
		case EntryBranch:
			out = append(out,
				Entry[K]{Type: EntryLiteral, Literal: e.Literal, Kind: e.Kind, Name: e.Name},
				Entry[K]{Type: EntryLiteral, Literal: e.End, Kind: e.Kind, Name: e.Name},
			)
		case EntryPredicate:
		}
	}
	return out
}

// Branches returns the branch entries in table order.
func (t *Table[K]) Branches() []Entry[K] {
	return t.filter(func(e Entry[K]) bool { return e.Type == EntryBranch })
}

func (t *Table[K]) filter(keep func(Entry[K]) bool) []Entry[K] {
	if t == nil {
		return nil
	}
	var out []Entry[K]
	for _, e := range t.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Builder assembles a Table. Methods chain; errors surface from Build.
type Builder[K any] struct {
	entries []Entry[K]
}

// NewBuilder creates an empty builder.
func NewBuilder[K any]() *Builder[K] {
	return &Builder[K]{}
}

// Rule appends a predicate rule.
func (b *Builder[K]) Rule(pred Predicate, kind K) *Builder[K] {
	return b.Add(NewPredicate(pred, kind))
}

// RuleFunc appends a predicate rule backed by a plain function.
func (b *Builder[K]) RuleFunc(fn func(ch rune, index int) bool, kind K) *Builder[K] {
	return b.Add(NewPredicate(PredicateFunc(fn), kind))
}

// Token appends a literal token.
func (b *Builder[K]) Token(literal string, kind K) *Builder[K] {
	return b.Add(NewLiteral(literal, kind))
}

// Tokens appends several literal tokens, keeping their order.
func (b *Builder[K]) Tokens(pairs ...Pair[K]) *Builder[K] {
	for _, p := range pairs {
		b.Token(p.Literal, p.Kind)
	}
	return b
}

// Branch appends a delimiter pair.
func (b *Builder[K]) Branch(start, end string, kind K) *Builder[K] {
	return b.Add(NewBranch(start, end, kind))
}

// Add appends an arbitrary entry.
func (b *Builder[K]) Add(entries ...Entry[K]) *Builder[K] {
	b.entries = append(b.entries, entries...)
	return b
}

// Len returns the number of entries added so far.
func (b *Builder[K]) Len() int {
	return len(b.entries)
}

// Build validates the entries and returns the table.
func (b *Builder[K]) Build() (*Table[K], error) {
	var errs []error
	for i, e := range b.entries {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return NewTable(b.entries...), nil
}

// MustBuild is Build for tables known to be valid; it panics otherwise.
func (b *Builder[K]) MustBuild() *Table[K] {
	table, err := b.Build()
	if err != nil {
		panic(err)
	}
	return table
}

// Pair is a literal and its kind, for Builder.Tokens.
type Pair[K any] struct {
	Literal string
	Kind    K
}

// P is shorthand for constructing a Pair.
func P[K any](literal string, kind K) Pair[K] {
	return Pair[K]{Literal: literal, Kind: kind}
}
