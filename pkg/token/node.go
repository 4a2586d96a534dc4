package token

// NodeType distinguishes leaves from branches.
type NodeType uint8

const (
	NodeLeaf NodeType = iota
	NodeBranch
)

// String returns the lowercase name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeLeaf:
		return "leaf"
	case NodeBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Node is a single element of a token tree.
//
// A leaf holds exactly one Token. A branch holds the start delimiter in
// Token, the end delimiter in End, and everything between them in Children.
// HasEnd is false when the input ended before the end delimiter; End is then
// the zero Token.
type Node[K any] struct {
	Type     NodeType
	Token    Token[K]
	End      Token[K]
	Children []Node[K]
	HasEnd   bool
}

// NewLeaf creates a leaf node for tok.
func NewLeaf[K any](tok Token[K]) Node[K] {
	return Node[K]{Type: NodeLeaf, Token: tok}
}

// NewBranch creates a branch node. Pass the zero Token and hasEnd=false for
// an unterminated branch.
func NewBranch[K any](start Token[K], children []Node[K], end Token[K], hasEnd bool) Node[K] {
	return Node[K]{
		Type:     NodeBranch,
		Token:    start,
		End:      end,
		Children: children,
		HasEnd:   hasEnd,
	}
}

// IsBranch returns true if this node is a branch.
func (n Node[K]) IsBranch() bool {
	return n.Type == NodeBranch
}

// IsLeaf returns true if this node is a leaf.
func (n Node[K]) IsLeaf() bool {
	return n.Type == NodeLeaf
}

// Kind returns the kind of the leaf token, or of the branch start token.
func (n Node[K]) Kind() K {
	return n.Token.Kind
}

// ChildCount returns the number of direct children.
func (n Node[K]) ChildCount() int {
	return len(n.Children)
}
