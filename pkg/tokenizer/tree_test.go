package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
	"github.com/yaklabco/gotok/pkg/tokenizer"
)

func TestTree_FallbackKind(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(rules.NewTable[kind](), "x")

	require.Len(t, tree, 1)
	assert.True(t, tree[0].IsLeaf())
	assert.Equal(t, "x", tree[0].Token.Value)
	assert.Equal(t, kindInvalid, tree[0].Token.Kind)
}

func TestTree_NilTableFallsBack(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree[kind](nil, "ab")
	assert.Equal(t, []string{"a", "b"}, leafValues(tree))
}

func TestTree_EmptyAndBlankInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tokenizer.Tree(mathTable(), ""))
	assert.Empty(t, tokenizer.Tree(mathTable(), " \t\n\r\n "))
}

func TestTree_RulePrecedence(t *testing.T) {
	t.Parallel()

	predicateFirst := rules.NewBuilder[kind]().
		Rule(rules.Digit, kindNumber).
		Token("1", kindOne).
		MustBuild()
	literalFirst := rules.NewBuilder[kind]().
		Token("1", kindOne).
		Rule(rules.Digit, kindNumber).
		MustBuild()

	tree := tokenizer.Tree(predicateFirst, "1")
	require.Len(t, tree, 1)
	assert.Equal(t, kindNumber, tree[0].Token.Kind)

	tree = tokenizer.Tree(literalFirst, "1")
	require.Len(t, tree, 1)
	assert.Equal(t, kindOne, tree[0].Token.Kind)
}

func TestTree_PredicateRun(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "123+abc_9")

	assert.Equal(t, []string{"123", "+", "abc_9"}, leafValues(tree))
	assert.Equal(t, kindNumber, tree[0].Token.Kind)
	assert.Equal(t, kindPlus, tree[1].Token.Kind)
	assert.Equal(t, kindIdent, tree[2].Token.Kind)
}

func TestTree_LiteralTableOrder(t *testing.T) {
	t.Parallel()

	// Tree mode is first-match: "=" precedes "=>" in the table.
	tree := tokenizer.Tree(mathTable(), "=>")
	require.Len(t, tree, 2)
	assert.Equal(t, kindEqual, tree[0].Token.Kind)
	assert.Equal(t, kindInvalid, tree[1].Token.Kind)

	arrowFirst := rules.NewBuilder[kind]().
		Token("=>", kindArrow).
		Token("=", kindEqual).
		MustBuild()
	tree = tokenizer.Tree(arrowFirst, "=>=")
	assert.Equal(t, []string{"=>", "="}, leafValues(tree))
}

func TestTree_BranchRoundTrip(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "(a)")

	require.Len(t, tree, 1)
	branch := tree[0]
	require.True(t, branch.IsBranch())
	assert.Equal(t, "(", branch.Token.Value)
	assert.Equal(t, ")", branch.End.Value)
	assert.True(t, branch.HasEnd)
	assert.Equal(t, kindParen, branch.Kind())
	require.Len(t, branch.Children, 1)
	assert.True(t, branch.Children[0].IsLeaf())
	assert.Equal(t, "a", branch.Children[0].Token.Value)
}

func TestTree_UnterminatedBranch(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "(a")

	require.Len(t, tree, 1)
	branch := tree[0]
	require.True(t, branch.IsBranch())
	assert.False(t, branch.HasEnd)
	assert.True(t, branch.End.IsEmpty())
	require.Len(t, branch.Children, 1)
	assert.Equal(t, "a", branch.Children[0].Token.Value)
}

func TestTree_NestedBranches(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "f(a, [1 + (2)]) ; g")

	require.Len(t, tree, 4)
	assert.Equal(t, []string{"f", "(", ";", "g"}, leafValues(tree))

	call := tree[1]
	require.True(t, call.IsBranch())
	assert.True(t, call.HasEnd)
	assert.Equal(t, []string{"a", ",", "["}, leafValues(call.Children))
	assert.Equal(t, kindInvalid, call.Children[1].Token.Kind, "comma has no rule")

	index := call.Children[2]
	require.True(t, index.IsBranch())
	assert.Equal(t, kindBracket, index.Kind())
	assert.Equal(t, "]", index.End.Value)
	assert.Equal(t, []string{"1", "+", "("}, leafValues(index.Children))

	inner := index.Children[2]
	assert.True(t, inner.HasEnd)
	assert.Equal(t, []string{"2"}, leafValues(inner.Children))
	assert.Equal(t, 3, token.Depth(tree))
}

func TestTree_UnterminatedNestedClosesInnermostFirst(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "(a [b")

	require.Len(t, tree, 1)
	outer := tree[0]
	assert.False(t, outer.HasEnd)
	require.Len(t, outer.Children, 2)
	inner := outer.Children[1]
	assert.True(t, inner.IsBranch())
	assert.False(t, inner.HasEnd)
	assert.Equal(t, []string{"b"}, leafValues(inner.Children))
}

func TestTree_MismatchedCloserStaysInside(t *testing.T) {
	t.Parallel()

	// "]" does not close a paren branch; it becomes a child.
	tree := tokenizer.Tree(mathTable(), "(a ] )")

	require.Len(t, tree, 1)
	assert.True(t, tree[0].HasEnd)
	assert.Equal(t, []string{"a", "]"}, leafValues(tree[0].Children))
}

func TestTree_StrayCloserAtTopLevel(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), ") a")
	assert.Equal(t, []string{")", "a"}, leafValues(tree))
	assert.True(t, tree[0].IsLeaf())
}

func TestTree_CloseByTextIgnoresKind(t *testing.T) {
	t.Parallel()

	// ")" is matched by a predicate rule, yet still closes the branch.
	table := rules.NewBuilder[kind]().
		Branch("(", ")", kindParen).
		Rule(rules.OneOf(")"), kindSemicolon).
		Rule(rules.Letter, kindIdent).
		MustBuild()

	tree := tokenizer.Tree(table, "(a)")
	require.Len(t, tree, 1)
	assert.True(t, tree[0].HasEnd)
	assert.Equal(t, kindSemicolon, tree[0].End.Kind)
}

func TestTree_CloseByTextNeedsWholeLeaf(t *testing.T) {
	t.Parallel()

	// The run "))" is one leaf whose text is not ")", so the branch stays open.
	table := rules.NewBuilder[kind]().
		Branch("(", ")", kindParen).
		Rule(rules.OneOf(")"), kindSemicolon).
		MustBuild()

	tree := tokenizer.Tree(table, "())")
	require.Len(t, tree, 1)
	assert.False(t, tree[0].HasEnd)
	assert.Equal(t, []string{"))"}, leafValues(tree[0].Children))
}

func TestTree_SameTextDelimiters(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().
		Branch(`"`, `"`, kindQuote).
		Rule(rules.Letter, kindIdent).
		MustBuild()

	// By text: the second quote opens another branch.
	byText := tokenizer.New(table, `"ab" c`, tokenizer.Options{Close: tokenizer.CloseByText}).Tree()
	require.Len(t, byText, 1)
	assert.False(t, byText[0].HasEnd)
	assert.Equal(t, 2, token.Depth(byText))

	// By delimiter: the branch's own end is checked first.
	byDelim := tokenizer.New(table, `"ab" c`, tokenizer.Options{Close: tokenizer.CloseByDelimiter}).Tree()
	require.Len(t, byDelim, 2)
	assert.True(t, byDelim[0].HasEnd)
	assert.Equal(t, kindQuote, byDelim[0].End.Kind)
	assert.Equal(t, []string{"ab"}, leafValues(byDelim[0].Children))
	assert.Equal(t, "c", byDelim[1].Token.Value)
}

func TestTree_CloseByDelimiterPrefersEnd(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().
		Token(">=", kindArrow).
		Branch("<", ">", kindBracket).
		Rule(rules.Letter, kindIdent).
		MustBuild()

	byText := tokenizer.Tree(table, "<a>=b>")
	require.Len(t, byText, 1)
	assert.Equal(t, []string{"a", ">=", "b"}, leafValues(byText[0].Children))

	byDelim := tokenizer.New(table, "<a>=b>", tokenizer.Options{Close: tokenizer.CloseByDelimiter}).Tree()
	assert.Equal(t, []string{"<", "=", "b", ">"}, leafValues(byDelim))
}

func TestTree_MaxDepth(t *testing.T) {
	t.Parallel()

	src := "(((a)))"
	tree := tokenizer.New(mathTable(), src, tokenizer.Options{MaxDepth: 2}).Tree()

	require.Len(t, tree, 2)
	assert.Equal(t, 2, token.Depth(tree))

	outer := tree[0]
	assert.True(t, outer.HasEnd)
	middle := outer.Children[0]
	assert.True(t, middle.HasEnd)
	// The third "(" is a leaf; its ")" closes the middle branch.
	assert.Equal(t, []string{"(", "a"}, leafValues(middle.Children))
	assert.Equal(t, kindParen, middle.Children[0].Token.Kind)
	assert.True(t, middle.Children[0].IsLeaf())
	assert.Equal(t, ")", tree[1].Token.Value)
}

func TestTree_DeepNestingDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const depth = 100_000
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)

	tree := tokenizer.Tree(mathTable(), src)
	require.Len(t, tree, 1)

	node := tree[0]
	for range depth - 1 {
		require.True(t, node.HasEnd)
		require.Len(t, node.Children, 1)
		node = node.Children[0]
	}
	assert.Equal(t, []string{"x"}, leafValues(node.Children))
}

func TestTree_PositionTracking(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().Rule(rules.Single(rules.Letter), kindIdent).MustBuild()
	tree := tokenizer.Tree(table, "a\nb")

	require.Len(t, tree, 2)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, tree[0].Token.Position)
	assert.Equal(t, token.Position{Line: 2, Column: 1}, tree[1].Token.Position)
}

func TestTree_PositionsAndOffsets(t *testing.T) {
	t.Parallel()

	src := "  ab (c\n  12)"
	tokens := token.Flatten(tokenizer.Tree(mathTable(), src))

	require.Len(t, tokens, 5)
	expected := []struct {
		value string
		pos   token.Position
	}{
		{"ab", token.Position{Line: 1, Column: 3}},
		{"(", token.Position{Line: 1, Column: 6}},
		{"c", token.Position{Line: 1, Column: 7}},
		{"12", token.Position{Line: 2, Column: 3}},
		{")", token.Position{Line: 2, Column: 5}},
	}
	for i, want := range expected {
		assert.Equal(t, want.value, tokens[i].Value)
		assert.Equal(t, want.pos, tokens[i].Position, "token %q", want.value)
		assert.Equal(t, want.value, tokens[i].Text(src))
	}
}

func TestTree_MultiByteCharacters(t *testing.T) {
	t.Parallel()

	tree := tokenizer.Tree(mathTable(), "é+ü")

	assert.Equal(t, []string{"é", "+", "ü"}, leafValues(tree))
	assert.Equal(t, kindIdent, tree[0].Token.Kind)
	assert.Equal(t, 3, tree[2].Token.Position.Column)
	assert.Equal(t, 3, tree[2].Token.StartOffset)
}

func TestTree_Deterministic(t *testing.T) {
	t.Parallel()

	src := "f(a, [1 + (2)]) ; => g("
	tok := tokenizer.New(mathTable(), src, tokenizer.DefaultOptions())

	assert.Equal(t, tok.Tree(), tok.Tree())
	assert.Equal(t, tokenizer.Tree(mathTable(), src), tok.Tree())
}

func TestNodes_StopsEarly(t *testing.T) {
	t.Parallel()

	tok := tokenizer.New(mathTable(), "a b (c) d", tokenizer.DefaultOptions())

	var seen []string
	for node := range tok.Nodes() {
		seen = append(seen, node.Token.Value)
		if node.IsBranch() {
			break
		}
	}

	assert.Equal(t, []string{"a", "b", "("}, seen)
}

func TestTree_Progress(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x",
		"(((",
		")))",
		"a+b=>c;[d]",
		"@#$%^&*",
		"12 34\n\t56",
		"=>=>==",
	}

	for _, src := range inputs {
		for _, table := range []*rules.Table[kind]{mathTable(), rules.NewTable[kind]()} {
			tokens := token.Flatten(tokenizer.Tree(table, src))
			consumed := 0
			for _, tk := range tokens {
				require.NotEmpty(t, tk.Value)
				consumed += len([]rune(tk.Value))
			}
			assert.Equal(t, nonSpaceCount(src), consumed, "input %q", src)
		}
	}
}

func TestTokenizer_Accessors(t *testing.T) {
	t.Parallel()

	opts := tokenizer.Options{MaxDepth: 3, Close: tokenizer.CloseByDelimiter}
	tok := tokenizer.New(mathTable(), "src", opts)

	assert.Equal(t, "src", tok.Source())
	assert.Equal(t, opts, tok.Options())
}
