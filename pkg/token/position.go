package token

import "fmt"

// Position represents a 1-based line and column in the source.
// Columns count characters, not bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String formats the position as "line:column".
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Shift returns the position moved down by lines.
// Used to map positions inside an embedded snippet back to the enclosing file.
func (p Position) Shift(lines int) Position {
	if !p.IsValid() {
		return p
	}
	return Position{Line: p.Line + lines, Column: p.Column}
}
