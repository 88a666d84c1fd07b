package mdselect

// Block token type tags, following the markdown-it naming convention the
// tokenizer emits. Paired constructs get _open/_close tags; leaf constructs
// (fence, code_block, hr, html_block) get a single tag.
const (
	TokenParagraphOpen    = "paragraph_open"
	TokenParagraphClose   = "paragraph_close"
	TokenHeadingOpen      = "heading_open"
	TokenHeadingClose     = "heading_close"
	TokenBlockquoteOpen   = "blockquote_open"
	TokenBlockquoteClose  = "blockquote_close"
	TokenBulletListOpen   = "bullet_list_open"
	TokenBulletListClose  = "bullet_list_close"
	TokenOrderedListOpen  = "ordered_list_open"
	TokenOrderedListClose = "ordered_list_close"
	TokenListItemOpen     = "list_item_open"
	TokenListItemClose    = "list_item_close"
	TokenFence            = "fence"
	TokenCodeBlock        = "code_block"
	TokenHr               = "hr"
	TokenHTMLBlock        = "html_block"
	TokenInline           = "inline"
)

// BlockToken is one structural unit identified by the tokenizer.
//
// Map is the [startLine, endLineExclusive) span the token occupies in the
// source, or nil for tokens with no line span. Level is the markdown-it
// nesting depth: an open token carries the depth before descending into the
// construct, so a top-level list opens at level 0 and its items at level 1.
type BlockToken struct {
	Type  string
	Map   []int
	Level int
}

// HasMap reports whether the token carries a usable line span.
func (t BlockToken) HasMap() bool {
	return len(t.Map) == 2 && t.Map[0] >= 0 && t.Map[1] > t.Map[0]
}

// SpanLength returns the number of source lines the token nominally covers.
func (t BlockToken) SpanLength() int {
	if !t.HasMap() {
		return 0
	}
	return t.Map[1] - t.Map[0]
}

// isListFamily reports whether the token opens a list container or list item.
func isListFamily(t BlockToken) bool {
	switch t.Type {
	case TokenOrderedListOpen, TokenListItemOpen, TokenBulletListOpen:
		return true
	}
	return false
}

// isStructuralBlock reports whether the token contributes a selection step.
// Close tokens and inline runs are noise; heading tokens are excluded because
// heading structure is owned entirely by the header-chain builder.
func isStructuralBlock(t BlockToken) bool {
	switch t.Type {
	case TokenListItemClose, TokenParagraphClose, TokenBulletListClose,
		TokenInline, TokenHeadingClose, TokenHeadingOpen:
		return false
	}
	return true
}
