// Package tokenizer turns source text into tokens using an ordered rule table.
//
// Two outputs are available. Tree builds a nested token tree where branch
// delimiter pairs from the table become branch nodes. Stream produces a
// flat token list where runs of symbol characters are split into the longest
// literal tokens the table defines.
//
// Tokenization never fails: text that no rule matches becomes tokens carrying
// the zero value of the kind type, and branches that reach the end of input
// are reported with HasEnd set to false.
package tokenizer

import (
	"iter"
	"slices"

	"github.com/yaklabco/gotok/pkg/cursor"
	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/token"
)

// Tokenizer binds a rule table to one source text.
//
// The table and source are only read. Each call to Tree, Nodes or Stream
// starts from the beginning of the source, so a Tokenizer can be reused, but
// a single Tokenizer must not be used from several goroutines at once.
// Share the table instead.
type Tokenizer[K any] struct {
	table *rules.Table[K]
	src   string
	opts  Options
}

// New creates a tokenizer. A nil table behaves like an empty one.
func New[K any](table *rules.Table[K], src string, opts Options) *Tokenizer[K] {
	if table == nil {
		table = rules.NewTable[K]()
	}
	return &Tokenizer[K]{table: table, src: src, opts: opts}
}

// Tree tokenizes src with default options and returns the token tree.
func Tree[K any](table *rules.Table[K], src string) []token.Node[K] {
	return New(table, src, DefaultOptions()).Tree()
}

// Stream tokenizes src in flat mode with default options.
func Stream[K any](table *rules.Table[K], src string) []token.Token[K] {
	return New(table, src, DefaultOptions()).Stream()
}

// Source returns the text being tokenized.
func (t *Tokenizer[K]) Source() string {
	return t.src
}

// Options returns the options the tokenizer was created with.
func (t *Tokenizer[K]) Options() Options {
	return t.opts
}

// Tree returns the complete token tree.
func (t *Tokenizer[K]) Tree() []token.Node[K] {
	return slices.Collect(t.Nodes())
}

// Nodes yields top-level nodes as soon as each is complete. A branch is
// yielded only after its end delimiter (or the end of input) is reached.
func (t *Tokenizer[K]) Nodes() iter.Seq[token.Node[K]] {
	return func(yield func(token.Node[K]) bool) {
		builder := newTreeBuilder(t.table, cursor.New(t.src), t.opts)
		for {
			node, ok := builder.next()
			if !ok || !yield(node) {
				return
			}
		}
	}
}
