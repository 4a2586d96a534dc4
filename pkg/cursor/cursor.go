// Package cursor provides a random-access reader over source text with
// row/column bookkeeping and cheap save/restore for speculative matching.
package cursor

import "unicode/utf8"

// Cursor walks a borrowed source string one character at a time.
//
// Offsets are byte indexes into the source and always lie in [0, len(src)].
// Row starts at 1. Column starts at 0, increments on every consumed
// character and resets to 0 after a newline, so after consuming the first
// character of a line the column is 1.
type Cursor struct {
	src    string
	offset int
	row    int
	col    int
	last   rune
	ok     bool
}

// Mark is a saved cursor state. Restoring a Mark rewinds the cursor without
// copying the source.
type Mark struct {
	offset int
	row    int
	col    int
	last   rune
	ok     bool
}

// Offset returns the byte offset saved in the mark.
func (m Mark) Offset() int {
	return m.offset
}

// New creates a cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src, row: 1}
}

// Peek returns the character at the current offset without consuming it.
// The boolean is false at end of input.
func (c *Cursor) Peek() (rune, bool) {
	if c.offset >= len(c.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.offset:])
	return r, true
}

// Advance consumes and returns the character at the current offset.
// At end of input it does nothing and returns false.
func (c *Cursor) Advance() (rune, bool) {
	if c.offset >= len(c.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.offset:])
	c.offset += size
	if r == '\n' {
		c.row++
		c.col = 0
	} else {
		c.col++
	}
	c.last = r
	c.ok = true
	return r, true
}

// Last returns the most recently consumed character.
// The boolean is false if nothing has been consumed yet.
func (c *Cursor) Last() (rune, bool) {
	return c.last, c.ok
}

// Position returns the current byte offset.
func (c *Cursor) Position() int {
	return c.offset
}

// Row returns the current 1-based row.
func (c *Cursor) Row() int {
	return c.row
}

// Column returns the number of characters consumed on the current row.
func (c *Cursor) Column() int {
	return c.col
}

// AtEOF reports whether every character has been consumed.
func (c *Cursor) AtEOF() bool {
	return c.offset >= len(c.src)
}

// Slice returns the source text in the half-open byte range [start, end).
// Out-of-range bounds are clamped.
func (c *Cursor) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(c.src))
	if start >= end {
		return ""
	}
	return c.src[start:end]
}

// Mark saves the current state.
func (c *Cursor) Mark() Mark {
	return Mark{offset: c.offset, row: c.row, col: c.col, last: c.last, ok: c.ok}
}

// Restore rewinds the cursor to a previously saved state.
func (c *Cursor) Restore(m Mark) {
	c.offset = m.offset
	c.row = m.row
	c.col = m.col
	c.last = m.last
	c.ok = m.ok
}
