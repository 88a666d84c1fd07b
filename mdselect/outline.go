package mdselect

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HeadingEntry is one heading in the document outline. Range spans the
// heading's own line through the last line of everything it owns: its content
// and all nested subheadings, up to (but not including) the next heading of
// equal or higher level.
type HeadingEntry struct {
	Level int
	Text  string
	Line  int
	Range Range
}

// OutlineProvider produces the ordered heading outline for a document
// snapshot. Implementations must be deterministic for a given source.
type OutlineProvider interface {
	Outline(source string) ([]HeadingEntry, error)
}

// GoldmarkOutline extracts the heading outline from a goldmark AST.
type GoldmarkOutline struct {
	md goldmark.Markdown
}

// NewGoldmarkOutline creates an outline provider backed by a default goldmark parser.
func NewGoldmarkOutline() *GoldmarkOutline {
	return &GoldmarkOutline{md: goldmark.New()}
}

// Outline parses the source and returns its headings in document order.
func (o *GoldmarkOutline) Outline(source string) ([]HeadingEntry, error) {
	src := []byte(strings.ReplaceAll(source, "\r\n", "\n"))
	doc := o.md.Parser().Parse(text.NewReader(src))
	ix := newLineIndex(src)

	var entries []HeadingEntry
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := node.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		entries = append(entries, HeadingEntry{
			Level: h.Level,
			Text:  headingText(h, src),
			Line:  ix.lineFor(h.Lines().At(0).Start),
		})
		return ast.WalkContinue, nil
	})

	// each heading owns everything up to the next heading of equal or
	// higher level, or the end of the document
	lastLine := ix.lineCount() - 1
	for i := range entries {
		endLine := lastLine
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Level <= entries[i].Level {
				endLine = entries[j].Line - 1
				break
			}
		}
		entries[i].Range = NewRange(entries[i].Line, 0, endLine, len([]rune(ix.lineText(endLine))))
	}
	return entries, nil
}

func headingText(h *ast.Heading, src []byte) string {
	var sb strings.Builder
	for child := h.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			sb.Write(textNode.Segment.Value(src))
		}
	}
	return strings.TrimSpace(sb.String())
}
