package mdselect

import "fmt"

// Session is a UI-agnostic expand/shrink state machine over one document. It
// serves as a model for UI components: it remembers the document, the
// collaborator snapshots, the cursor, and the chain node currently selected,
// and lets callers grow the selection outward or undo a growth step.
//
// Session responsibilities:
// - hold document text plus its token stream and heading outline snapshots
// - compute the selection chain for the cursor lazily, on first expansion
// - walk the chain outward on Expand, and back inward on Shrink
// - reset selection state when the cursor or the document changes
type Session struct {
	doc     *TextDocument
	tokens  []BlockToken
	outline []HeadingEntry

	tokenizer       Tokenizer
	outlineProvider OutlineProvider

	cursor  Position
	current *SelectionRange
	history *History[*SelectionRange]
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Tokenizer  Tokenizer
	Outline    OutlineProvider
	HistoryMax int
}

// NewSession creates a session with no document loaded.
func NewSession(opts SessionOptions) *Session {
	tokenizer := opts.Tokenizer
	if tokenizer == nil {
		tokenizer = NewGoldmarkTokenizer()
	}
	outline := opts.Outline
	if outline == nil {
		outline = NewGoldmarkOutline()
	}
	hmax := opts.HistoryMax
	if hmax <= 0 {
		hmax = 50
	}
	return &Session{
		tokenizer:       tokenizer,
		outlineProvider: outline,
		history:         NewHistory[*SelectionRange](hmax),
	}
}

// SetDocument loads markdown content, replacing any previous document. State
// is only mutated if both collaborators succeed, so the session stays valid
// on error.
func (s *Session) SetDocument(content string) error {
	tokens, err := s.tokenizer.Tokenize(content)
	if err != nil {
		return fmt.Errorf("tokenize document: %w", err)
	}
	outline, err := s.outlineProvider.Outline(content)
	if err != nil {
		return fmt.Errorf("build outline: %w", err)
	}

	s.doc = NewTextDocument(content)
	s.tokens = tokens
	s.outline = outline
	s.cursor = Position{}
	s.resetSelection()
	return nil
}

// Document returns the loaded document, or nil.
func (s *Session) Document() *TextDocument { return s.doc }

// Cursor returns the current cursor position.
func (s *Session) Cursor() Position { return s.cursor }

// SetCursor moves the cursor, clamped to the document, and drops the current
// selection when the position actually changes.
func (s *Session) SetCursor(pos Position) {
	pos = s.clamp(pos)
	if pos == s.cursor {
		return
	}
	s.cursor = pos
	s.resetSelection()
}

func (s *Session) clamp(pos Position) Position {
	if s.doc == nil {
		return Position{}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if max := s.doc.LineCount() - 1; pos.Line > max {
		pos.Line = max
	}
	if pos.Character < 0 {
		pos.Character = 0
	}
	if max := s.doc.LineLength(pos.Line); pos.Character > max {
		pos.Character = max
	}
	return pos
}

func (s *Session) resetSelection() {
	s.current = nil
	s.history.Clear()
}

// Current returns the currently selected chain node, or nil when no
// selection is active.
func (s *Session) Current() *SelectionRange { return s.current }

// Expand grows the selection one structural step outward. The first call
// computes the chain for the cursor and selects its innermost range.
// Returns false when there is nothing further to select.
func (s *Session) Expand() bool {
	if s.doc == nil {
		return false
	}
	if s.current == nil {
		s.current = SelectionRangeAt(s.doc, s.tokens, s.outline, s.cursor)
		return s.current != nil
	}
	if s.current.Parent == nil {
		return false
	}
	s.history.Push(s.current)
	s.current = s.current.Parent
	return true
}

// Shrink undoes the most recent expansion step. Returns false when the
// selection is already at its innermost state.
func (s *Session) Shrink() bool {
	prev, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.current = prev
	return true
}

// Depth returns how many expansion steps remain from the current node to the
// outermost one, or -1 with no active selection.
func (s *Session) Depth() int {
	if s.current == nil {
		return -1
	}
	return s.current.Depth() - 1
}
