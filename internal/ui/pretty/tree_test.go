package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotok/internal/ui/pretty"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/token"
)

func tok(value string, kind config.Kind, line, col int) token.Token[config.Kind] {
	return token.Token[config.Kind]{Value: value, Kind: kind, Position: token.Position{Line: line, Column: col}}
}

// sampleTree is "f(x) (y" tokenized with a paren branch rule.
func sampleTree() []token.Node[config.Kind] {
	return []token.Node[config.Kind]{
		token.NewLeaf(tok("f", "ident", 1, 1)),
		token.NewBranch(tok("(", "paren", 1, 2),
			[]token.Node[config.Kind]{token.NewLeaf(tok("x", "ident", 1, 3))},
			tok(")", "paren", 1, 4), true),
		token.NewBranch(tok("(", "paren", 1, 6),
			[]token.Node[config.Kind]{token.NewLeaf(tok("y", config.KindInvalid, 1, 7))},
			token.Token[config.Kind]{}, false),
	}
}

func TestFormatToken(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, `1:3 ident "x"`, styles.FormatToken(tok("x", "ident", 1, 3)))
	assert.Equal(t, `2:1 invalid "\n"`, styles.FormatToken(tok("\n", config.KindInvalid, 2, 1)))
}

func TestFormatTree(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	want := `1:1 ident "f"
┌ 1:2 paren "("
│ 1:3 ident "x"
└ 1:4 paren ")"
┌ 1:6 paren "("
│ 1:7 invalid "y"
└ unterminated
`
	assert.Equal(t, want, styles.FormatTree(sampleTree()))
}

func TestFormatTree_Nested(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	inner := token.NewBranch(tok("[", "bracket", 1, 2), nil, tok("]", "bracket", 1, 3), true)
	nodes := []token.Node[config.Kind]{
		token.NewBranch(tok("(", "paren", 1, 1), []token.Node[config.Kind]{inner}, tok(")", "paren", 1, 4), true),
	}

	want := `┌ 1:1 paren "("
│ ┌ 1:2 bracket "["
│ └ 1:3 bracket "]"
└ 1:4 paren ")"
`
	assert.Equal(t, want, styles.FormatTree(nodes))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatTokens(token.Flatten(sampleTree()))

	assert.Equal(t, `1:1 ident "f"
1:2 paren "("
1:3 ident "x"
1:4 paren ")"
1:6 paren "("
1:7 invalid "y"
`, out)
}
