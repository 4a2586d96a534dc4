package tokenizer

import (
	"unicode"

	"github.com/yaklabco/gotok/pkg/cursor"
	"github.com/yaklabco/gotok/pkg/token"
)

// Stream returns a flat token list.
//
// At each position the first predicate rule that accepts the current
// character consumes its run. Otherwise the maximal run of symbol characters
// (neither blank nor accepted by any predicate) is collected and split by
// LongestMatch over the table's literals. Branch delimiters are treated as
// literals of the branch kind; no nesting is built.
func (t *Tokenizer[K]) Stream() []token.Token[K] {
	m := matcher[K]{table: t.table, cur: cursor.New(t.src)}
	preds := t.table.Predicates()
	literals := t.table.Literals()

	var tokens []token.Token[K]
	for {
		m.skipWhitespace()
		ch, ok := m.cur.Peek()
		if !ok {
			return tokens
		}

		start := m.cur.Mark()
		pos := m.position()

		if entry, found := firstAccepting(preds, ch); found {
			m.predicate(entry.Predicate)
			tokens = append(tokens, m.token(start, pos, entry.Kind))
			continue
		}

		for {
			ch, ok := m.cur.Peek()
			if !ok || unicode.IsSpace(ch) || predicateAccepts(preds, ch) {
				break
			}
			m.cur.Advance()
		}

		run := m.cur.Slice(start.Offset(), m.cur.Position())
		for _, seg := range LongestMatch(literals, run) {
			offset := start.Offset() + seg.Offset
			tokens = append(tokens, token.Token[K]{
				Value:       seg.Text,
				Kind:        seg.Kind,
				Position:    token.Position{Line: pos.Line, Column: pos.Column + seg.Column},
				StartOffset: offset,
				EndOffset:   offset + len(seg.Text),
			})
		}
	}
}
