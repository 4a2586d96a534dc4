// Package token defines the values produced by the tokenizer: positioned
// tokens and the leaf/branch tree built from them.
package token

// Token represents a matched span of the source together with its kind.
// The kind type is supplied by the caller; its zero value marks text that no
// rule matched.
type Token[K any] struct {
	// Value is the matched text. It is empty only for the placeholder end
	// token of an unterminated branch.
	Value string

	// Kind classifies what this token represents.
	Kind K

	// Position is where the match began.
	Position Position

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Len returns the length of this token in bytes.
func (t Token[K]) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token matched no text.
func (t Token[K]) IsEmpty() bool {
	return t.Value == ""
}

// Text returns the source text of this token from the given content.
func (t Token[K]) Text(content string) string {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return ""
	}
	return content[t.StartOffset:t.EndOffset]
}

// Mapper translates coordinates of an embedded snippet into coordinates of
// the enclosing document.
type Mapper interface {
	// MapPosition maps a 1-based snippet position.
	MapPosition(p Position) Position

	// MapOffset maps the byte at offset in the snippet.
	MapOffset(offset int) int
}

// LineShift is a Mapper for snippets copied verbatim from the document:
// rows move down by Lines and offsets move right by Offset bytes.
type LineShift struct {
	Lines  int
	Offset int
}

func (s LineShift) MapPosition(p Position) Position { return p.Shift(s.Lines) }
func (s LineShift) MapOffset(offset int) int        { return offset + s.Offset }

// Relocate returns the token mapped into document coordinates by m. The end
// offset is mapped through the token's last byte, so a token spanning a
// line break stays contiguous in the document. Placeholder end tokens are
// returned unchanged.
func (t Token[K]) Relocate(m Mapper) Token[K] {
	if t.IsEmpty() && !t.Position.IsValid() {
		return t
	}
	t.Position = m.MapPosition(t.Position)
	start := m.MapOffset(t.StartOffset)
	if t.EndOffset > t.StartOffset {
		t.EndOffset = m.MapOffset(t.EndOffset-1) + 1
	} else {
		t.EndOffset = start
	}
	t.StartOffset = start
	return t
}
