package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
	"github.com/yaklabco/gotok/pkg/tokenizer"
)

func TestStream_LongestMatch(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().
		Token("=", kindEqual).
		Token("=>", kindArrow).
		MustBuild()

	tokens := tokenizer.Stream(table, "=>")

	require.Len(t, tokens, 1)
	assert.Equal(t, "=>", tokens[0].Value)
	assert.Equal(t, kindArrow, tokens[0].Kind)
}

func TestStream_SplitsSymbolRuns(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Stream(mathTable(), "a=>=+b==>1")

	assert.Equal(t, []string{"a", "=>", "=", "+", "b", "=", "=>", "1"}, values(tokens))
	assert.Equal(t,
		[]kind{kindIdent, kindArrow, kindEqual, kindPlus, kindIdent, kindEqual, kindArrow, kindNumber},
		kinds(tokens))
}

func TestStream_UnmatchedRemainderIsOneToken(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Stream(mathTable(), "+@#=")

	assert.Equal(t, []string{"+", "@#="}, values(tokens))
	assert.Equal(t, []kind{kindPlus, kindInvalid}, kinds(tokens))
}

func TestStream_BranchDelimitersAreLiterals(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Stream(mathTable(), "f(x)[0]")

	assert.Equal(t, []string{"f", "(", "x", ")", "[", "0", "]"}, values(tokens))
	assert.Equal(t, kindParen, tokens[1].Kind)
	assert.Equal(t, kindParen, tokens[3].Kind)
	assert.Equal(t, kindBracket, tokens[6].Kind)
}

func TestStream_PredicatePrecedence(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().
		Token("1", kindOne).
		Rule(rules.Digit, kindNumber).
		MustBuild()

	// A predicate accepting the first character always wins in flat mode.
	tokens := tokenizer.Stream(table, "12")
	require.Len(t, tokens, 1)
	assert.Equal(t, kindNumber, tokens[0].Kind)
}

func TestStream_FirstAcceptingPredicateWins(t *testing.T) {
	t.Parallel()

	table := rules.NewBuilder[kind]().
		Rule(rules.Hex, kindNumber).
		Rule(rules.Ident, kindIdent).
		MustBuild()

	tokens := tokenizer.Stream(table, "beef_1 xyz")
	assert.Equal(t, []string{"beef", "_1", "xyz"}, values(tokens))
	assert.Equal(t, []kind{kindNumber, kindIdent, kindIdent}, kinds(tokens))
}

func TestStream_SubTokenColumns(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Stream(mathTable(), "x\n  =>=+")

	require.Len(t, tokens, 4)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, tokens[0].Position)
	assert.Equal(t, token.Position{Line: 2, Column: 3}, tokens[1].Position)
	assert.Equal(t, token.Position{Line: 2, Column: 5}, tokens[2].Position)
	assert.Equal(t, token.Position{Line: 2, Column: 6}, tokens[3].Position)
	assert.Equal(t, 6, tokens[2].StartOffset)
	assert.Equal(t, 7, tokens[2].EndOffset)
}

func TestStream_EmptyTable(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Stream(rules.NewTable[kind](), "ab cd")

	assert.Equal(t, []string{"ab", "cd"}, values(tokens))
	assert.Equal(t, []kind{kindInvalid, kindInvalid}, kinds(tokens))
}

func TestStream_Progress(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "   ", "a+b", "=>=>==", "@@ ## 12", "(x]"} {
		tokens := tokenizer.Stream(mathTable(), src)
		consumed := 0
		for _, tk := range tokens {
			require.NotEmpty(t, tk.Value)
			consumed += len([]rune(tk.Value))
		}
		assert.Equal(t, nonSpaceCount(src), consumed, "input %q", src)
	}
}

func TestLongestMatch(t *testing.T) {
	t.Parallel()

	literals := []rules.Entry[kind]{
		rules.NewLiteral("=", kindEqual),
		rules.NewLiteral("=>", kindArrow),
		rules.NewLiteral("+", kindPlus),
		rules.NewLiteral("=>", kindOne),
	}

	tests := []struct {
		name     string
		run      string
		expected []tokenizer.Segment[kind]
	}{
		{
			name: "longest wins",
			run:  "=>",
			expected: []tokenizer.Segment[kind]{
				{Text: "=>", Kind: kindArrow, Offset: 0, Column: 0, Matched: true},
			},
		},
		{
			name: "sequence",
			run:  "+==>",
			expected: []tokenizer.Segment[kind]{
				{Text: "+", Kind: kindPlus, Offset: 0, Column: 0, Matched: true},
				{Text: "=", Kind: kindEqual, Offset: 1, Column: 1, Matched: true},
				{Text: "=>", Kind: kindArrow, Offset: 2, Column: 2, Matched: true},
			},
		},
		{
			name: "remainder stops splitting",
			run:  "+?=",
			expected: []tokenizer.Segment[kind]{
				{Text: "+", Kind: kindPlus, Offset: 0, Column: 0, Matched: true},
				{Text: "?=", Kind: kindInvalid, Offset: 1, Column: 1, Matched: false},
			},
		},
		{
			name: "multi-byte column",
			run:  "§+",
			expected: []tokenizer.Segment[kind]{
				{Text: "§+", Kind: kindInvalid, Offset: 0, Column: 0, Matched: false},
			},
		},
		{
			name:     "empty run",
			run:      "",
			expected: nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, tokenizer.LongestMatch(literals, testCase.run))
		})
	}
}

func TestLongestMatch_IgnoresEmptyLiterals(t *testing.T) {
	t.Parallel()

	literals := []rules.Entry[kind]{rules.NewLiteral("", kindOne), rules.NewLiteral("+", kindPlus)}
	segments := tokenizer.LongestMatch(literals, "++")

	require.Len(t, segments, 2)
	assert.Equal(t, kindPlus, segments[1].Kind)
}

func TestParseClosePolicy(t *testing.T) {
	t.Parallel()

	policy, err := tokenizer.ParseClosePolicy("")
	require.NoError(t, err)
	assert.Equal(t, tokenizer.CloseByText, policy)

	policy, err = tokenizer.ParseClosePolicy("delimiter")
	require.NoError(t, err)
	assert.Equal(t, tokenizer.CloseByDelimiter, policy)
	assert.Equal(t, "delimiter", policy.String())

	_, err = tokenizer.ParseClosePolicy("balanced")
	require.Error(t, err)
}
