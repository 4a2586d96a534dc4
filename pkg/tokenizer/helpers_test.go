package tokenizer_test

import (
	"unicode"

	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
)

type kind int

const (
	kindInvalid kind = iota
	kindNumber
	kindIdent
	kindOne
	kindPlus
	kindEqual
	kindArrow
	kindParen
	kindBracket
	kindQuote
	kindSemicolon
)

func (k kind) String() string {
	names := map[kind]string{
		kindInvalid:   "invalid",
		kindNumber:    "number",
		kindIdent:     "ident",
		kindOne:       "one",
		kindPlus:      "plus",
		kindEqual:     "equal",
		kindArrow:     "arrow",
		kindParen:     "paren",
		kindBracket:   "bracket",
		kindQuote:     "quote",
		kindSemicolon: "semicolon",
	}
	return names[k]
}

// mathTable mirrors a small arithmetic language.
func mathTable() *rules.Table[kind] {
	return rules.NewBuilder[kind]().
		Rule(rules.Digit, kindNumber).
		Rule(rules.Ident, kindIdent).
		Branch("(", ")", kindParen).
		Branch("[", "]", kindBracket).
		Token("+", kindPlus).
		Token("=", kindEqual).
		Token("=>", kindArrow).
		Token(";", kindSemicolon).
		MustBuild()
}

func values(tokens []token.Token[kind]) []string {
	out := make([]string, 0, len(tokens))
	for _, tk := range tokens {
		out = append(out, tk.Value)
	}
	return out
}

func kinds(tokens []token.Token[kind]) []kind {
	out := make([]kind, 0, len(tokens))
	for _, tk := range tokens {
		out = append(out, tk.Kind)
	}
	return out
}

func leafValues(nodes []token.Node[kind]) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Token.Value)
	}
	return out
}

func nonSpaceCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
