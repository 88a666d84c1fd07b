package mdselect

import "strings"

// Document provides line-level access to a text buffer. Implementations must
// tolerate out-of-range line numbers by answering as for an empty line, so
// range construction near document edges never panics.
type Document interface {
	LineCount() int
	LineText(line int) string
	LineLength(line int) int
	IsEmptyOrWhitespace(line int) bool
}

// TextDocument is a Document backed by an in-memory string, split once.
type TextDocument struct {
	lines []string
}

// NewTextDocument builds a document from markdown source text.
func NewTextDocument(content string) *TextDocument {
	// normalize CRLF so line lengths match what the tokenizer sees
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &TextDocument{lines: strings.Split(content, "\n")}
}

// LineCount returns the number of lines in the document.
func (d *TextDocument) LineCount() int { return len(d.lines) }

// LineText returns the text of the given line, without its terminator.
// Out-of-range lines read as empty.
func (d *TextDocument) LineText(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	return d.lines[line]
}

// LineLength returns the character length of the given line.
func (d *TextDocument) LineLength(line int) int {
	return len([]rune(d.LineText(line)))
}

// IsEmptyOrWhitespace reports whether the line is blank or whitespace-only.
func (d *TextDocument) IsEmptyOrWhitespace(line int) bool {
	return strings.TrimSpace(d.LineText(line)) == ""
}

// Text returns the document content joined back into a single string.
func (d *TextDocument) Text() string {
	return strings.Join(d.lines, "\n")
}
