package tokenizer

import (
	"github.com/yaklabco/gotok/pkg/cursor"
	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
)

// frame is a branch whose end delimiter has not been seen yet.
type frame[K any] struct {
	start    token.Token[K]
	end      string
	children []token.Node[K]
}

// treeBuilder assembles the token tree with an explicit stack of open
// branches, so nesting depth is bounded by memory rather than the call stack.
type treeBuilder[K any] struct {
	matcher matcher[K]
	opts    Options
	stack   []*frame[K]
}

func newTreeBuilder[K any](table *rules.Table[K], cur *cursor.Cursor, opts Options) *treeBuilder[K] {
	return &treeBuilder[K]{
		matcher: matcher[K]{table: table, cur: cur},
		opts:    opts,
	}
}

// next runs matcher steps until a top-level node is complete.
// It returns false once the input is exhausted and every branch is closed.
func (b *treeBuilder[K]) next() (token.Node[K], bool) {
	cur := b.matcher.cur

	for {
		b.matcher.skipWhitespace()

		if cur.AtEOF() {
			if len(b.stack) == 0 {
				return token.Node[K]{}, false
			}
			// Unterminated: close innermost first with a placeholder end.
			if node, done := b.close(token.Token[K]{}, false); done {
				return node, true
			}
			continue
		}

		if b.opts.Close == CloseByDelimiter && len(b.stack) > 0 {
			if end, ok := b.matchEnd(); ok {
				if node, done := b.close(end, true); done {
					return node, true
				}
				continue
			}
		}

		result := b.matcher.step()

		if result.outcome == outcomeBranch {
			if b.opts.MaxDepth <= 0 || len(b.stack) < b.opts.MaxDepth {
				b.stack = append(b.stack, &frame[K]{start: result.token, end: result.end})
				continue
			}
			result.outcome = outcomeLeaf
		}

		if b.opts.Close == CloseByText && len(b.stack) > 0 &&
			result.token.Value == b.stack[len(b.stack)-1].end {
			if node, done := b.close(result.token, true); done {
				return node, true
			}
			continue
		}

		if node, done := b.emit(token.NewLeaf(result.token)); done {
			return node, true
		}
	}
}

// matchEnd consumes the innermost branch's end delimiter if it comes next.
// The end token takes the branch's kind.
func (b *treeBuilder[K]) matchEnd() (token.Token[K], bool) {
	top := b.stack[len(b.stack)-1]
	start := b.matcher.cur.Mark()
	pos := b.matcher.position()
	if !b.matcher.literal(top.end) {
		return token.Token[K]{}, false
	}
	return b.matcher.token(start, pos, top.start.Kind), true
}

// close pops the innermost branch and hands the finished node to its parent.
func (b *treeBuilder[K]) close(end token.Token[K], hasEnd bool) (token.Node[K], bool) {
	top := b.stack[len(b.stack)-1]
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	return b.emit(token.NewBranch(top.start, top.children, end, hasEnd))
}

// emit appends node to the innermost open branch. At top level it returns the
// node with true instead.
func (b *treeBuilder[K]) emit(node token.Node[K]) (token.Node[K], bool) {
	if len(b.stack) == 0 {
		return node, true
	}
	top := b.stack[len(b.stack)-1]
	top.children = append(top.children, node)
	return token.Node[K]{}, false
}
