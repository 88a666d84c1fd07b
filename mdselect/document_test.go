package mdselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextDocumentLines(t *testing.T) {
	doc := NewTextDocument("first\n\n  \nlast")

	assert.Equal(t, 4, doc.LineCount())
	assert.Equal(t, "first", doc.LineText(0))
	assert.Equal(t, 5, doc.LineLength(0))
	assert.True(t, doc.IsEmptyOrWhitespace(1))
	assert.True(t, doc.IsEmptyOrWhitespace(2), "whitespace-only line")
	assert.False(t, doc.IsEmptyOrWhitespace(3))
}

func TestTextDocumentOutOfRange(t *testing.T) {
	doc := NewTextDocument("only line")

	assert.Equal(t, "", doc.LineText(-1))
	assert.Equal(t, "", doc.LineText(5))
	assert.Equal(t, 0, doc.LineLength(5))
	assert.True(t, doc.IsEmptyOrWhitespace(-1))
}

func TestTextDocumentNormalizesCRLF(t *testing.T) {
	doc := NewTextDocument("a\r\nb\r\nc")

	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, "b", doc.LineText(1))
	assert.Equal(t, "a\nb\nc", doc.Text())
}
