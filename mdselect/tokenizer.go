package mdselect

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenizer produces the flat, ordered block token stream for a document
// snapshot. Implementations must be deterministic for a given source.
type Tokenizer interface {
	Tokenize(source string) ([]BlockToken, error)
}

// GoldmarkTokenizer walks a goldmark AST and emits markdown-it style block
// tokens with [startLine, endLineExclusive) maps and nesting levels.
type GoldmarkTokenizer struct {
	md goldmark.Markdown
}

// NewGoldmarkTokenizer creates a tokenizer backed by a default goldmark parser.
func NewGoldmarkTokenizer() *GoldmarkTokenizer {
	return &GoldmarkTokenizer{md: goldmark.New()}
}

// Tokenize parses the source and flattens its block structure into tokens.
func (t *GoldmarkTokenizer) Tokenize(source string) ([]BlockToken, error) {
	src := []byte(strings.ReplaceAll(source, "\r\n", "\n"))
	doc := t.md.Parser().Parse(text.NewReader(src))
	ix := newLineIndex(src)

	var tokens []BlockToken
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		tokens = append(tokens, emitBlock(child, ix, 0)...)
	}
	return tokens, nil
}

// emitBlock converts one block node (and its children) into tokens. Nodes
// whose position cannot be determined emit nothing.
func emitBlock(node ast.Node, ix *lineIndex, depth int) []BlockToken {
	switch n := node.(type) {
	case *ast.Paragraph:
		return emitTextBlock(n, ix, depth, TokenParagraphOpen, TokenParagraphClose)
	case *ast.TextBlock:
		// tight list items carry text blocks instead of paragraphs
		return emitTextBlock(n, ix, depth, TokenParagraphOpen, TokenParagraphClose)
	case *ast.Heading:
		return emitTextBlock(n, ix, depth, TokenHeadingOpen, TokenHeadingClose)
	case *ast.FencedCodeBlock:
		return emitFence(n, ix, depth)
	case *ast.CodeBlock:
		if m, ok := contentSpan(n, ix); ok {
			return []BlockToken{{Type: TokenCodeBlock, Map: m, Level: depth}}
		}
	case *ast.HTMLBlock:
		if m, ok := contentSpan(n, ix); ok {
			return []BlockToken{{Type: TokenHTMLBlock, Map: m, Level: depth}}
		}
	case *ast.Blockquote:
		return emitContainer(n, ix, depth, TokenBlockquoteOpen, TokenBlockquoteClose, false)
	case *ast.List:
		openTag, closeTag := TokenBulletListOpen, TokenBulletListClose
		if n.IsOrdered() {
			openTag, closeTag = TokenOrderedListOpen, TokenOrderedListClose
		}
		return emitContainer(n, ix, depth, openTag, closeTag, depth == 0)
	case *ast.ListItem:
		return emitContainer(n, ix, depth, TokenListItemOpen, TokenListItemClose, false)
	}
	// thematic breaks and other markerless nodes carry no line information
	return nil
}

// emitTextBlock emits an open token with the node's line span, an inline run
// one level deeper, and a close token with no span.
func emitTextBlock(node ast.Node, ix *lineIndex, depth int, openTag, closeTag string) []BlockToken {
	m, ok := contentSpan(node, ix)
	if !ok {
		return nil
	}
	return []BlockToken{
		{Type: openTag, Map: m, Level: depth},
		{Type: TokenInline, Map: []int{m[0], m[1]}, Level: depth + 1},
		{Type: closeTag, Level: depth},
	}
}

// emitFence emits a fence token spanning both delimiter lines. An unclosed
// fence at end of input spans through its last content line.
func emitFence(n *ast.FencedCodeBlock, ix *lineIndex, depth int) []BlockToken {
	var openLine int
	switch {
	case n.Info != nil:
		openLine = ix.lineFor(n.Info.Segment.Start)
	case n.Lines().Len() > 0:
		openLine = ix.lineFor(n.Lines().At(0).Start) - 1
	default:
		return nil
	}

	endExclusive := openLine + 1
	if n.Lines().Len() > 0 {
		last := n.Lines().At(n.Lines().Len() - 1)
		endExclusive = ix.lineFor(last.Stop-1) + 1
	}
	// include the closing delimiter line when one exists
	if endExclusive < ix.lineCount() && isFenceDelimiter(ix.lineText(endExclusive)) {
		endExclusive++
	}
	return []BlockToken{{Type: TokenFence, Map: []int{openLine, endExclusive}, Level: depth}}
}

func isFenceDelimiter(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// emitContainer emits open/children/close for a container node. Its span is
// the union of its children's spans; a top-level list additionally extends
// through one trailing blank line, matching the convention the block-chain
// builder corrects for.
func emitContainer(node ast.Node, ix *lineIndex, depth int, openTag, closeTag string, extendTrailingBlank bool) []BlockToken {
	var children []BlockToken
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, emitBlock(child, ix, depth+1)...)
	}

	start, endExclusive, ok := unionSpan(children)
	if !ok {
		return nil
	}
	if extendTrailingBlank && endExclusive < ix.lineCount() && ix.isBlank(endExclusive) {
		endExclusive++
	}

	tokens := make([]BlockToken, 0, len(children)+2)
	tokens = append(tokens, BlockToken{Type: openTag, Map: []int{start, endExclusive}, Level: depth})
	tokens = append(tokens, children...)
	tokens = append(tokens, BlockToken{Type: closeTag, Level: depth})
	return tokens
}

// contentSpan derives a node's line span from its content segments.
func contentSpan(node ast.Node, ix *lineIndex) ([]int, bool) {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return nil, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	start := ix.lineFor(first.Start)
	end := ix.lineFor(last.Stop - 1)
	return []int{start, end + 1}, true
}

// unionSpan merges the spans of already-emitted child tokens.
func unionSpan(tokens []BlockToken) (start, endExclusive int, ok bool) {
	for _, tok := range tokens {
		if !tok.HasMap() {
			continue
		}
		if !ok {
			start, endExclusive, ok = tok.Map[0], tok.Map[1], true
			continue
		}
		if tok.Map[0] < start {
			start = tok.Map[0]
		}
		if tok.Map[1] > endExclusive {
			endExclusive = tok.Map[1]
		}
	}
	return start, endExclusive, ok
}

// lineIndex maps byte offsets in the source to zero-based line numbers.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (ix *lineIndex) lineCount() int { return len(ix.starts) }

func (ix *lineIndex) lineFor(offset int) int {
	if offset < 0 {
		return 0
	}
	return sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
}

func (ix *lineIndex) lineText(line int) string {
	if line < 0 || line >= len(ix.starts) {
		return ""
	}
	start := ix.starts[line]
	end := len(ix.src)
	if line+1 < len(ix.starts) {
		end = ix.starts[line+1] - 1
	}
	return string(ix.src[start:end])
}

func (ix *lineIndex) isBlank(line int) bool {
	return strings.TrimSpace(ix.lineText(line)) == ""
}
