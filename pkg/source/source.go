// Package source turns input files into tokenizable units. Plain files are
// one unit; Markdown files can be split into their fenced code blocks using
// goldmark, with line numbers kept relative to the document.
package source

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gotok/pkg/token"
)

// Unit is a contiguous piece of an input to tokenize on its own.
type Unit struct {
	// Content is the text to tokenize.
	Content string

	// Language is the fence language, or empty when unknown.
	Language string

	// Info is the raw fence info string.
	Info string

	// LineOffset is the number of document lines before Content.
	// Token positions are shifted by this amount.
	LineOffset int

	// Offset is the byte offset of the first line of Content within the
	// document.
	Offset int

	// lines maps each line of Content back to the document. Empty for
	// units that are the document itself.
	lines []lineMap
}

// lineMap places one line of a unit in the document. Goldmark strips
// container indentation (list items, block quotes, indented code) and may
// expand a partially consumed tab into padding spaces that do not exist in
// the document.
type lineMap struct {
	text   int // byte offset of the line in Content
	doc    int // byte offset of the line's first source byte in the document
	row    int // 0-based document row
	indent int // characters stripped before doc on that row
	pad    int // padding spaces prepended to the line in Content
}

// Embedded reports whether the unit was cut out of a larger document, in
// which case token coordinates must be mapped with MapPosition and MapOffset.
func (u Unit) Embedded() bool {
	return len(u.lines) > 0
}

// line returns the entry for the Content line holding byte offset off.
func (u Unit) line(off int) lineMap {
	i := sort.Search(len(u.lines), func(i int) bool { return u.lines[i].text > off }) - 1
	return u.lines[max(i, 0)]
}

// MapPosition maps a 1-based position in Content to the document.
func (u Unit) MapPosition(p token.Position) token.Position {
	if !u.Embedded() || !p.IsValid() {
		return p
	}
	l := u.lines[min(p.Line, len(u.lines))-1]
	return token.Position{
		Line:   l.row + 1,
		Column: l.indent + max(p.Column-l.pad, 1),
	}
}

// MapOffset maps a byte offset in Content to the document.
func (u Unit) MapOffset(off int) int {
	if !u.Embedded() {
		return off
	}
	l := u.line(off)
	return l.doc + max(off-l.text-l.pad, 0)
}

// markdownExtensions lists file extensions treated as Markdown.
//
//nolint:gochecknoglobals // Read-only extension list.
var markdownExtensions = []string{".md", ".markdown", ".mdown", ".mkd"}

// IsMarkdown reports whether path names a Markdown file.
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Whole returns content as a single unit.
func Whole(content []byte) []Unit {
	return []Unit{{Content: string(content)}}
}

// CodeBlocks extracts the fenced code blocks of a Markdown document.
// Indented code blocks are included with an empty language.
func CodeBlocks(ctx context.Context, content []byte) ([]Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var units []Unit
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch block := node.(type) {
		case *ast.FencedCodeBlock:
			unit := blockUnit(block, content)
			if block.Info != nil {
				unit.Info = string(block.Info.Value(content))
				unit.Language = fenceLanguage(unit.Info)
			}
			units = append(units, unit)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			units = append(units, blockUnit(block, content))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return units, nil
}

// blockUnit copies the lines of a code block and records where each one
// came from in the document.
func blockUnit(node ast.Node, content []byte) Unit {
	lines := node.Lines()
	if lines.Len() == 0 {
		return Unit{}
	}

	var buf bytes.Buffer
	unit := Unit{lines: make([]lineMap, 0, lines.Len())}
	for i := range lines.Len() {
		seg := lines.At(i)
		rowStart := bytes.LastIndexByte(content[:seg.Start], '\n') + 1
		unit.lines = append(unit.lines, lineMap{
			text:   buf.Len(),
			doc:    seg.Start,
			row:    bytes.Count(content[:seg.Start], []byte("\n")),
			indent: utf8.RuneCount(content[rowStart:seg.Start]),
			pad:    seg.Padding,
		})
		buf.Write(seg.Value(content))
	}

	unit.Content = buf.String()
	unit.Offset = unit.lines[0].doc
	unit.LineOffset = unit.lines[0].row
	return unit
}

// fenceLanguage returns the first word of a fence info string.
func fenceLanguage(info string) string {
	info = strings.TrimSpace(info)
	if i := strings.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	return info
}
