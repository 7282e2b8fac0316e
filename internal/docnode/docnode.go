// Package docnode adapts a parsed Markdown tree into the node accessor
// contract the matching engine is written against. The concrete tree is
// goldmark's ast.Node graph; docnode never leaks *ast.Node outside the
// package so that a different parser could stand in without touching
// internal/matcher.
package docnode

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/extension"
)

// Kind identifies a node's concrete Markdown element type.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindBlockquote
	KindList
	KindListItem
	KindTable
	KindTableHeader
	KindTableRow
	KindTableCell
	KindHeading
	KindParagraph
	KindTextBlock
	KindFencedCodeBlock
	KindCodeBlock
	KindHTMLBlock
	KindThematicBreak
	KindEmphasis
	KindLink
	KindImage
	KindText
	KindString
	KindCodeSpan
	KindAutoLink
	KindRawHTML
)

// Category is the coarse classification block/inline matching dispatches on.
type Category int

const (
	Other Category = iota
	ContainerBlock
	LeafBlock
	InlineContainer
	InlineLeaf
)

// ListKind distinguishes ordered from unordered (bulleted) lists.
type ListKind int

const (
	ListUnordered ListKind = iota
	ListOrdered
)

var kindCategory = map[Kind]Category{
	KindDocument:        ContainerBlock,
	KindBlockquote:      ContainerBlock,
	KindList:            ContainerBlock,
	KindListItem:        ContainerBlock,
	KindTable:           ContainerBlock,
	KindTableRow:        ContainerBlock,
	KindHeading:         LeafBlock,
	KindParagraph:       LeafBlock,
	KindTextBlock:       LeafBlock,
	KindFencedCodeBlock: LeafBlock,
	KindCodeBlock:       LeafBlock,
	KindHTMLBlock:       LeafBlock,
	KindThematicBreak:   LeafBlock,
	KindTableHeader:     LeafBlock,
	KindTableCell:       LeafBlock,
	KindEmphasis:        InlineContainer,
	KindLink:            InlineContainer,
	KindImage:           InlineContainer,
	KindText:            InlineLeaf,
	KindString:          InlineLeaf,
	KindCodeSpan:        InlineLeaf,
	KindAutoLink:        InlineLeaf,
	KindRawHTML:         InlineLeaf,
}

// Category returns the element category for a Kind, Other if unmapped.
func (k Kind) Category() Category {
	if c, ok := kindCategory[k]; ok {
		return c
	}
	return Other
}

func kindOf(n ast.Node) Kind {
	switch n.Kind() {
	case ast.KindDocument:
		return KindDocument
	case ast.KindBlockquote:
		return KindBlockquote
	case ast.KindList:
		return KindList
	case ast.KindListItem:
		return KindListItem
	case east.KindTable:
		return KindTable
	case east.KindTableHeader:
		return KindTableHeader
	case east.KindTableRow:
		return KindTableRow
	case east.KindTableCell:
		return KindTableCell
	case ast.KindHeading:
		return KindHeading
	case ast.KindParagraph:
		return KindParagraph
	case ast.KindTextBlock:
		return KindTextBlock
	case ast.KindFencedCodeBlock:
		return KindFencedCodeBlock
	case ast.KindCodeBlock:
		return KindCodeBlock
	case ast.KindHTMLBlock:
		return KindHTMLBlock
	case ast.KindThematicBreak:
		return KindThematicBreak
	case ast.KindEmphasis:
		return KindEmphasis
	case ast.KindLink:
		return KindLink
	case ast.KindImage:
		return KindImage
	case ast.KindText:
		return KindText
	case ast.KindString:
		return KindString
	case ast.KindCodeSpan:
		return KindCodeSpan
	case ast.KindAutoLink:
		return KindAutoLink
	case ast.KindRawHTML:
		return KindRawHTML
	default:
		return KindUnknown
	}
}

// Node wraps a goldmark ast.Node, exposing the typed accessors the matcher needs.
type Node struct {
	raw    ast.Node
	source []byte
	cache  *nodeCache
}

// nodeCache ensures every ast.Node maps to exactly one *Node wrapper for the
// lifetime of a Tree, so that *Node pointer identity is itself a valid,
// stable map key (callers no longer need to fall back to Is()-based linear
// scans to recognize "the same node" across separate traversal calls).
type nodeCache struct {
	source []byte
	nodes  map[ast.Node]*Node
}

func (c *nodeCache) wrap(n ast.Node) *Node {
	if n == nil {
		return nil
	}
	if existing, ok := c.nodes[n]; ok {
		return existing
	}
	w := &Node{raw: n, source: c.source, cache: c}
	c.nodes[n] = w
	return w
}

// Is reports whether two Node handles refer to the same underlying element.
// Because nodeCache hands out exactly one *Node per ast.Node, this is just
// pointer equality; it is kept as a named method so callers compare nodes
// explicitly rather than relying on incidental pointer equality.
func (n *Node) Is(other *Node) bool {
	return n == other
}

// Kind returns the node's concrete element kind, KindUnknown for a nil node.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	return kindOf(n.raw)
}

// Category returns the node's coarse matching category.
func (n *Node) Category() Category { return n.Kind().Category() }

// HeadingLevel returns the heading level (1-6), or 0 for non-headings.
func (n *Node) HeadingLevel() int {
	if n == nil {
		return 0
	}
	if h, ok := n.raw.(*ast.Heading); ok {
		return h.Level
	}
	return 0
}

// ListKind returns whether a List node is ordered or unordered.
func (n *Node) ListKind() ListKind {
	if n == nil {
		return ListUnordered
	}
	if l, ok := n.raw.(*ast.List); ok {
		if l.IsOrdered() {
			return ListOrdered
		}
	}
	return ListUnordered
}

// Content returns the node's textual content: the concatenated literal text
// of its inline descendants for leaf blocks and inline containers, the raw
// source lines for HTML blocks, or the raw segment value for inline leaves.
func (n *Node) Content() string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	collectText(n.raw, n.source, &buf)
	return buf.String()
}

// URL returns the link/image destination, empty for other kinds.
func (n *Node) URL() string {
	if n == nil {
		return ""
	}
	switch v := n.raw.(type) {
	case *ast.Link:
		return string(v.Destination)
	case *ast.Image:
		return string(v.Destination)
	}
	return ""
}

// Title returns the link/image title attribute, empty for other kinds.
func (n *Node) Title() string {
	if n == nil {
		return ""
	}
	switch v := n.raw.(type) {
	case *ast.Link:
		return string(v.Title)
	case *ast.Image:
		return string(v.Title)
	}
	return ""
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.cache.wrap(n.raw.Parent())
}

func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.cache.wrap(n.raw.FirstChild())
}

func (n *Node) LastChild() *Node {
	if n == nil {
		return nil
	}
	return n.cache.wrap(n.raw.LastChild())
}

func (n *Node) PreviousSibling() *Node {
	if n == nil {
		return nil
	}
	return n.cache.wrap(n.raw.PreviousSibling())
}

func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	return n.cache.wrap(n.raw.NextSibling())
}

// Self returns n itself; present so callers that hold a cursor variable can
// treat "current node" uniformly with the other traversal accessors.
func (n *Node) Self() *Node { return n }

// Position returns the 1-based line and column of n's first text segment,
// for localizing diagnostics. Falls back to the parent's position (and
// ultimately 1,1) for nodes with no text segment of their own, such as an
// empty container.
func (n *Node) Position() (line, column int) {
	if n == nil {
		return 1, 1
	}
	if seg := firstSegment(n.raw); seg != nil {
		return lineColumn(n.source, seg.Start)
	}
	if p := n.Parent(); p != nil {
		return p.Position()
	}
	return 1, 1
}

type segmenter interface {
	Lines() *text.Segments
}

func firstSegment(n ast.Node) *text.Segment {
	if sg, ok := n.(segmenter); ok && sg.Lines().Len() > 0 {
		seg := sg.Lines().At(0)
		return &seg
	}
	if t, ok := n.(*ast.Text); ok {
		seg := t.Segment
		return &seg
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg := firstSegment(c); seg != nil {
			return seg
		}
	}
	return nil
}

func lineColumn(source []byte, offset int) (line, column int) {
	line = 1
	lastNewline := -1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, offset - lastNewline
}

func collectText(n ast.Node, source []byte, buf *bytes.Buffer) {
	switch v := n.(type) {
	case *ast.Text:
		buf.Write(v.Segment.Value(source))
		if v.SoftLineBreak() || v.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return
	case *ast.String:
		buf.Write(v.Value)
		return
	case *ast.CodeSpan:
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			collectText(c, source, buf)
		}
		return
	case *ast.AutoLink:
		buf.Write(v.Value(source))
		return
	case *ast.RawHTML:
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			buf.Write(seg.Value(source))
		}
		return
	case *ast.HTMLBlock:
		for i := 0; i < v.Lines().Len(); i++ {
			seg := v.Lines().At(i)
			buf.Write(seg.Value(source))
		}
		if v.HasClosure() {
			buf.Write(v.ClosureLine.Value(source))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, buf)
	}
}

// Tree is a parsed document plus the raw source it was parsed from and any
// front matter goldmark-meta extracted.
type Tree struct {
	Root        *Node
	Source      []byte
	FrontMatter map[string]any
}

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table, meta.Meta),
)

// Parse parses Markdown source into a Tree using the shared parser instance,
// so that a prescription and a document are always parsed with identical
// extensions and are directly comparable node by node.
func Parse(source []byte) (*Tree, error) {
	ctx := parser.NewContext()
	root := mdParser.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	fm := map[string]any{}
	if d := meta.Get(ctx); d != nil {
		fm = d
	}

	cache := &nodeCache{source: source, nodes: map[ast.Node]*Node{}}

	return &Tree{
		Root:        cache.wrap(root),
		Source:      source,
		FrontMatter: fm,
	}, nil
}
