package rules

import (
	"strings"
	"unicode"
)

// Predicate decides whether a predicate rule keeps matching.
//
// Continue is called with each candidate character and its index within the
// run being matched: index 0 decides whether the rule applies at all, later
// indexes whether the run extends.
type Predicate interface {
	Continue(ch rune, index int) bool
}

// PredicateFunc adapts an ordinary function to the Predicate interface.
type PredicateFunc func(ch rune, index int) bool

// Continue implements Predicate.
func (f PredicateFunc) Continue(ch rune, index int) bool {
	return f(ch, index)
}

// CharFunc adapts a single-character classifier that ignores the index,
// such as unicode.IsDigit.
type CharFunc func(ch rune) bool

// Continue implements Predicate.
func (f CharFunc) Continue(ch rune, _ int) bool {
	return f(ch)
}

// Built-in character classes. ASCII-only where the name says so.
var (
	Digit  Predicate = CharFunc(isDigit)
	Letter Predicate = CharFunc(unicode.IsLetter)
	Alnum  Predicate = CharFunc(isAlnum)
	Hex    Predicate = CharFunc(isHex)
	Upper  Predicate = CharFunc(unicode.IsUpper)
	Lower  Predicate = CharFunc(unicode.IsLower)
	Punct  Predicate = CharFunc(unicode.IsPunct)
	Space  Predicate = CharFunc(unicode.IsSpace)

	// Ident accepts a letter or underscore followed by letters, digits or
	// underscores.
	Ident Predicate = Sequence(CharFunc(isIdentStart), CharFunc(isIdentPart))
)

// OneOf accepts runs made only of the given characters.
func OneOf(chars string) Predicate {
	return CharFunc(func(ch rune) bool {
		return strings.ContainsRune(chars, ch)
	})
}

// Sequence uses first for index 0 and rest for every later index.
func Sequence(first, rest Predicate) Predicate {
	return PredicateFunc(func(ch rune, index int) bool {
		if index == 0 {
			return first.Continue(ch, index)
		}
		return rest.Continue(ch, index)
	})
}

// Single accepts exactly one character matching p.
func Single(p Predicate) Predicate {
	return PredicateFunc(func(ch rune, index int) bool {
		return index == 0 && p.Continue(ch, index)
	})
}

// MaxLen stops a run after n characters.
func MaxLen(p Predicate, n int) Predicate {
	return PredicateFunc(func(ch rune, index int) bool {
		return index < n && p.Continue(ch, index)
	})
}

// Any accepts a character if any of the predicates does.
func Any(preds ...Predicate) Predicate {
	return PredicateFunc(func(ch rune, index int) bool {
		for _, p := range preds {
			if p.Continue(ch, index) {
				return true
			}
		}
		return false
	})
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHex(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlnum(ch rune) bool { return unicode.IsLetter(ch) || unicode.IsDigit(ch) }

func isIdentStart(ch rune) bool { return ch == '_' || unicode.IsLetter(ch) }

func isIdentPart(ch rune) bool { return isIdentStart(ch) || unicode.IsDigit(ch) }
