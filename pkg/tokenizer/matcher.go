package tokenizer

import (
	"unicode"

	"github.com/yaklabco/gotok/pkg/cursor"
	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
)

// outcome classifies a single matcher step.
type outcome uint8

const (
	outcomeLeaf outcome = iota
	outcomeBranch
	outcomeFallback
)

// match is the result of one matcher step. For outcomeBranch, end holds the
// end delimiter of the branch that was opened.
type match[K any] struct {
	outcome outcome
	token   token.Token[K]
	end     string
}

// matcher classifies the input at the cursor against a rule table.
type matcher[K any] struct {
	table *rules.Table[K]
	cur   *cursor.Cursor
}

// step tries each entry in table order and consumes the first match. When
// nothing matches it consumes a single character tagged with the zero kind,
// so every call makes progress. The cursor must not be at end of input.
func (m *matcher[K]) step() match[K] {
	start := m.cur.Mark()
	pos := m.position()

	for i := range m.table.Len() {
		entry := m.table.At(i)
		switch entry.Type {
		case rules.EntryPredicate:
			if entry.Predicate != nil && m.predicate(entry.Predicate) {
				return match[K]{outcome: outcomeLeaf, token: m.token(start, pos, entry.Kind)}
			}
		case rules.EntryLiteral:
			if m.literal(entry.Literal) {
				return match[K]{outcome: outcomeLeaf, token: m.token(start, pos, entry.Kind)}
			}
		case rules.EntryBranch:
			if m.literal(entry.Literal) {
				return match[K]{outcome: outcomeBranch, token: m.token(start, pos, entry.Kind), end: entry.End}
			}
		}
	}

	var zero K
	m.cur.Advance()
	return match[K]{outcome: outcomeFallback, token: m.token(start, pos, zero)}
}

// predicate consumes the run accepted by p. The first character is checked
// with index 0; the run then extends while p accepts the next character with
// an incrementing index.
func (m *matcher[K]) predicate(p rules.Predicate) bool {
	ch, ok := m.cur.Peek()
	if !ok || !p.Continue(ch, 0) {
		return false
	}
	m.cur.Advance()

	for index := 1; ; index++ {
		ch, ok := m.cur.Peek()
		if !ok || !p.Continue(ch, index) {
			return true
		}
		m.cur.Advance()
	}
}

// firstAccepting returns the first predicate entry that would start a run at ch.
func firstAccepting[K any](preds []rules.Entry[K], ch rune) (rules.Entry[K], bool) {
	for _, p := range preds {
		if p.Predicate != nil && p.Predicate.Continue(ch, 0) {
			return p, true
		}
	}
	return rules.Entry[K]{}, false
}

// predicateAccepts reports whether any predicate would start a run at ch.
func predicateAccepts[K any](preds []rules.Entry[K], ch rune) bool {
	_, ok := firstAccepting(preds, ch)
	return ok
}

// skipWhitespace consumes blank characters between tokens.
func (m *matcher[K]) skipWhitespace() {
	for {
		ch, ok := m.cur.Peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		m.cur.Advance()
	}
}

// literal consumes lit if the input continues with it. On a mismatch the
// cursor is restored to where it started. An empty literal never matches.
func (m *matcher[K]) literal(lit string) bool {
	if lit == "" {
		return false
	}
	mark := m.cur.Mark()
	for _, want := range lit {
		got, ok := m.cur.Advance()
		if !ok || got != want {
			m.cur.Restore(mark)
			return false
		}
	}
	return true
}

// position returns the position the next consumed character will have.
func (m *matcher[K]) position() token.Position {
	return token.Position{Line: m.cur.Row(), Column: m.cur.Column() + 1}
}

// token builds a token spanning from start to the current cursor offset.
func (m *matcher[K]) token(start cursor.Mark, pos token.Position, kind K) token.Token[K] {
	return token.Token[K]{
		Value:       m.cur.Slice(start.Offset(), m.cur.Position()),
		Kind:        kind,
		Position:    pos,
		StartOffset: start.Offset(),
		EndOffset:   m.cur.Position(),
	}
}
