package pretty

import (
	"strings"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/token"
)

// Tree guides.
const (
	guideOpen  = "┌ "
	guideChild = "│ "
	guideClose = "└ "
)

// FormatToken formats a token as `line:col kind "value"`.
func (s *Styles) FormatToken(tok token.Token[config.Kind]) string {
	kind := s.Kind.Render(tok.Kind.String())
	if tok.Kind.IsInvalid() {
		kind = s.Unknown.Render(tok.Kind.String())
	}
	return s.Location.Render(tok.Position.String()) + " " + kind + " " +
		s.Value.Render(`"`+DisplayValue(tok.Value)+`"`)
}

// FormatTree renders a token tree, one token per line. Branch children are
// drawn between the start and end delimiters with a vertical guide.
func (s *Styles) FormatTree(nodes []token.Node[config.Kind]) string {
	var builder strings.Builder
	s.writeTree(&builder, nodes, "")
	return builder.String()
}

func (s *Styles) writeTree(builder *strings.Builder, nodes []token.Node[config.Kind], prefix string) {
	for _, node := range nodes {
		if !node.IsBranch() {
			builder.WriteString(prefix + s.FormatToken(node.Token) + "\n")
			continue
		}

		builder.WriteString(prefix + s.Guide.Render(guideOpen) + s.FormatToken(node.Token) + "\n")
		s.writeTree(builder, node.Children, prefix+s.Guide.Render(guideChild))

		closing := s.Unterminated.Render("unterminated")
		if node.HasEnd {
			closing = s.FormatToken(node.End)
		}
		builder.WriteString(prefix + s.Guide.Render(guideClose) + closing + "\n")
	}
}

// FormatTokens renders a flat token list, one token per line.
func (s *Styles) FormatTokens(tokens []token.Token[config.Kind]) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(s.FormatToken(tok) + "\n")
	}
	return builder.String()
}
