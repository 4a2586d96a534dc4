package token

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// depth is 0 for top-level nodes. Return a non-nil error to stop the walk.
type WalkFunc[K any] func(n *Node[K], depth int) error

// ErrSkipChildren may be returned by a WalkFunc to skip the children of the
// current branch without stopping the walk.
var ErrSkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of nodes.
func Walk[K any](nodes []Node[K], walkFunc WalkFunc[K]) error {
	return walk(nodes, 0, walkFunc)
}

func walk[K any](nodes []Node[K], depth int, walkFunc WalkFunc[K]) error {
	for i := range nodes {
		node := &nodes[i]
		err := walkFunc(node, depth)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if node.IsBranch() {
			if err := walk(node.Children, depth+1, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flatten returns every token of the tree in source order. Branch start and
// end tokens are included; the placeholder end of an unterminated branch is
// not.
func Flatten[K any](nodes []Node[K]) []Token[K] {
	var tokens []Token[K]
	var visit func(nodes []Node[K])
	visit = func(nodes []Node[K]) {
		for _, node := range nodes {
			tokens = append(tokens, node.Token)
			if !node.IsBranch() {
				continue
			}
			visit(node.Children)
			if node.HasEnd {
				tokens = append(tokens, node.End)
			}
		}
	}
	visit(nodes)
	return tokens
}

// Count returns the number of nodes in the tree, branches included.
func Count[K any](nodes []Node[K]) int {
	total := 0
	//nolint:errcheck,revive // the callback never fails
	Walk(nodes, func(_ *Node[K], _ int) error {
		total++
		return nil
	})
	return total
}

// Depth returns the maximum branch nesting depth. A tree of leaves has depth 0.
func Depth[K any](nodes []Node[K]) int {
	maxDepth := 0
	//nolint:errcheck,revive // the callback never fails
	Walk(nodes, func(n *Node[K], depth int) error {
		if n.IsBranch() && depth+1 > maxDepth {
			maxDepth = depth + 1
		}
		return nil
	})
	return maxDepth
}

// FindAll returns pointers to all nodes matching the predicate, in pre-order.
func FindAll[K any](nodes []Node[K], predicate func(n *Node[K]) bool) []*Node[K] {
	var result []*Node[K]
	//nolint:errcheck,revive // the callback never fails
	Walk(nodes, func(n *Node[K], _ int) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})
	return result
}

// Relocate maps every token of the tree in place. A nil m leaves the tree
// untouched. See Token.Relocate.
func Relocate[K any](nodes []Node[K], m Mapper) {
	if m == nil {
		return
	}
	//nolint:errcheck,revive // the callback never fails
	Walk(nodes, func(n *Node[K], _ int) error {
		n.Token = n.Token.Relocate(m)
		if n.HasEnd {
			n.End = n.End.Relocate(m)
		}
		return nil
	})
}
